package application

// Topics of the observable change notifications published by the daemon.
const (
	TopicVaultCreated        = "vault.created"
	TopicDepositNative       = "deposit.native"
	TopicDepositToken        = "deposit.token"
	TopicWithdrawalNative    = "withdrawal.native"
	TopicWithdrawalToken     = "withdrawal.token"
	TopicBeneficiaryAdded    = "beneficiary.added"
	TopicBeneficiaryRemoved  = "beneficiary.removed"
	TopicBeneficiaryResigned = "beneficiary.resigned"
	TopicSettlement          = "settlement"
	TopicHeartbeat           = "heartbeat"
)
