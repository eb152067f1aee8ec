package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/heirvault/heirvault-daemon/internal/core/domain"
	"github.com/heirvault/heirvault-daemon/internal/core/ports"
)

// VaultService defines the methods of the application layer for operating
// dead-man's-switch vaults. Every mutating operation is all-or-nothing:
// the vault update is committed only after every step of the operation,
// external transfers included, has succeeded.
type VaultService interface {
	CreateVault(
		ctx context.Context, actor string, timeLock uint64,
	) (*VaultInfo, error)
	GetVault(ctx context.Context, vaultID string) (*VaultInfo, error)
	ListVaults(ctx context.Context) ([]VaultInfo, error)
	DepositNative(
		ctx context.Context, actor, vaultID string, amount uint64,
	) error
	DepositToken(
		ctx context.Context, actor, vaultID, asset string, amount uint64,
	) error
	WithdrawNative(
		ctx context.Context, actor, vaultID string, amount uint64,
	) error
	WithdrawToken(
		ctx context.Context, actor, vaultID, asset string, amount uint64,
	) error
	Heartbeat(ctx context.Context, actor, vaultID string) error
	AddBeneficiary(
		ctx context.Context, actor, vaultID, beneficiary string,
	) error
	RemoveBeneficiary(
		ctx context.Context, actor, vaultID, beneficiary string,
	) error
	Resign(ctx context.Context, actor, vaultID string) error
	Settle(ctx context.Context, actor, vaultID string) (*SettlementInfo, error)
	ListDeposits(
		ctx context.Context, vaultID string, page domain.Page,
	) ([]DepositInfo, error)
	ListWithdrawals(
		ctx context.Context, vaultID string, page domain.Page,
	) ([]WithdrawalInfo, error)
	ListSettlements(
		ctx context.Context, vaultID string, page domain.Page,
	) ([]SettlementInfo, error)
}

type vaultService struct {
	repoManager ports.RepoManager
	assetMover  ports.AssetMover
	pubsub      ports.SecurePubSub
}

// NewVaultService is the factory for a VaultService. The pubsub service is
// optional: without it state changes are only logged.
func NewVaultService(
	repoManager ports.RepoManager,
	assetMover ports.AssetMover,
	pubsub ports.SecurePubSub,
) VaultService {
	return &vaultService{
		repoManager: repoManager,
		assetMover:  assetMover,
		pubsub:      pubsub,
	}
}

func (s *vaultService) CreateVault(
	ctx context.Context, actor string, timeLock uint64,
) (*VaultInfo, error) {
	now := time.Now().Unix()

	vault, err := domain.NewVault(uuid.New().String(), actor, timeLock, now)
	if err != nil {
		return nil, err
	}
	if err := s.repoManager.VaultRepository().AddVault(ctx, vault); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"vault": vault.ID, "owner": actor, "timelock": timeLock,
	}).Info("vault created")

	s.publish(event{
		Topic:     TopicVaultCreated,
		VaultID:   vault.ID,
		Actor:     actor,
		Timestamp: now,
	})
	return vaultInfoFromDomain(vault, now), nil
}

func (s *vaultService) GetVault(
	ctx context.Context, vaultID string,
) (*VaultInfo, error) {
	vault, err := s.repoManager.VaultRepository().GetVault(ctx, vaultID)
	if err != nil {
		return nil, err
	}
	return vaultInfoFromDomain(vault, time.Now().Unix()), nil
}

func (s *vaultService) ListVaults(ctx context.Context) ([]VaultInfo, error) {
	vaults, err := s.repoManager.VaultRepository().GetAllVaults(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	infos := make([]VaultInfo, 0, len(vaults))
	for i := range vaults {
		infos = append(infos, *vaultInfoFromDomain(&vaults[i], now))
	}
	return infos, nil
}

func (s *vaultService) DepositNative(
	ctx context.Context, actor, vaultID string, amount uint64,
) error {
	now := time.Now().Unix()

	heartbeat, err := s.updateVault(ctx, vaultID, func(v *domain.Vault) error {
		return v.DepositNative(actor, amount, now)
	})
	if err != nil {
		return err
	}

	s.recordDeposit(ctx, domain.Deposit{
		ID:        uuid.New().String(),
		VaultID:   vaultID,
		Depositor: actor,
		Asset:     domain.NativeAsset,
		Amount:    amount,
		Timestamp: now,
	})
	s.publish(event{
		Topic:     TopicDepositNative,
		VaultID:   vaultID,
		Actor:     actor,
		Asset:     domain.NativeAsset,
		Amount:    amount,
		Timestamp: now,
	})
	s.publishHeartbeat(vaultID, heartbeat)
	return nil
}

func (s *vaultService) DepositToken(
	ctx context.Context, actor, vaultID, asset string, amount uint64,
) error {
	now := time.Now().Unix()

	heartbeat, err := s.updateVault(ctx, vaultID, func(v *domain.Vault) error {
		if err := v.CreditToken(actor, asset, amount, now); err != nil {
			return err
		}
		// Pull the funds from the depositor before the credit is
		// committed. A failed pull aborts the whole deposit.
		if err := s.assetMover.TransferIn(ctx, asset, actor, amount); err != nil {
			return fmt.Errorf("%w: %s", ErrTransferFailed, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recordDeposit(ctx, domain.Deposit{
		ID:        uuid.New().String(),
		VaultID:   vaultID,
		Depositor: actor,
		Asset:     asset,
		Amount:    amount,
		Timestamp: now,
	})
	s.publish(event{
		Topic:     TopicDepositToken,
		VaultID:   vaultID,
		Actor:     actor,
		Asset:     asset,
		Amount:    amount,
		Timestamp: now,
	})
	s.publishHeartbeat(vaultID, heartbeat)
	return nil
}

func (s *vaultService) WithdrawNative(
	ctx context.Context, actor, vaultID string, amount uint64,
) error {
	return s.withdraw(ctx, actor, vaultID, domain.NativeAsset, amount)
}

func (s *vaultService) WithdrawToken(
	ctx context.Context, actor, vaultID, asset string, amount uint64,
) error {
	if asset == domain.NativeAsset {
		return domain.ErrInvalidAsset
	}
	return s.withdraw(ctx, actor, vaultID, asset, amount)
}

func (s *vaultService) withdraw(
	ctx context.Context, actor, vaultID, asset string, amount uint64,
) error {
	now := time.Now().Unix()

	heartbeat, err := s.updateVault(ctx, vaultID, func(v *domain.Vault) error {
		var err error
		if asset == domain.NativeAsset {
			err = v.WithdrawNative(actor, amount, now)
		} else {
			err = v.WithdrawToken(actor, asset, amount, now)
		}
		if err != nil {
			return err
		}
		if err := s.assetMover.TransferOut(ctx, asset, actor, amount); err != nil {
			return fmt.Errorf("%w: %s", ErrTransferFailed, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recordWithdrawal(ctx, domain.Withdrawal{
		ID:        uuid.New().String(),
		VaultID:   vaultID,
		Receiver:  actor,
		Asset:     asset,
		Amount:    amount,
		Timestamp: now,
	})

	topic := TopicWithdrawalToken
	if asset == domain.NativeAsset {
		topic = TopicWithdrawalNative
	}
	s.publish(event{
		Topic:     topic,
		VaultID:   vaultID,
		Actor:     actor,
		Asset:     asset,
		Amount:    amount,
		Timestamp: now,
	})
	s.publishHeartbeat(vaultID, heartbeat)
	return nil
}

func (s *vaultService) Heartbeat(
	ctx context.Context, actor, vaultID string,
) error {
	now := time.Now().Unix()

	heartbeat, err := s.updateVault(ctx, vaultID, func(v *domain.Vault) error {
		return v.RecordHeartbeat(actor, now)
	})
	if err != nil {
		return err
	}

	s.publishHeartbeat(vaultID, heartbeat)
	return nil
}

func (s *vaultService) AddBeneficiary(
	ctx context.Context, actor, vaultID, beneficiary string,
) error {
	now := time.Now().Unix()

	heartbeat, err := s.updateVault(ctx, vaultID, func(v *domain.Vault) error {
		return v.AddBeneficiary(actor, beneficiary, now)
	})
	if err != nil {
		return err
	}

	s.publish(event{
		Topic:       TopicBeneficiaryAdded,
		VaultID:     vaultID,
		Actor:       actor,
		Beneficiary: beneficiary,
		Timestamp:   now,
	})
	s.publishHeartbeat(vaultID, heartbeat)
	return nil
}

func (s *vaultService) RemoveBeneficiary(
	ctx context.Context, actor, vaultID, beneficiary string,
) error {
	now := time.Now().Unix()

	heartbeat, err := s.updateVault(ctx, vaultID, func(v *domain.Vault) error {
		return v.RemoveBeneficiary(actor, beneficiary, now)
	})
	if err != nil {
		return err
	}

	s.publish(event{
		Topic:       TopicBeneficiaryRemoved,
		VaultID:     vaultID,
		Actor:       actor,
		Beneficiary: beneficiary,
		Timestamp:   now,
	})
	s.publishHeartbeat(vaultID, heartbeat)
	return nil
}

func (s *vaultService) Resign(
	ctx context.Context, actor, vaultID string,
) error {
	if _, err := s.updateVault(ctx, vaultID, func(v *domain.Vault) error {
		return v.Resign(actor)
	}); err != nil {
		return err
	}

	s.publish(event{
		Topic:       TopicBeneficiaryResigned,
		VaultID:     vaultID,
		Actor:       actor,
		Beneficiary: actor,
		Timestamp:   time.Now().Unix(),
	})
	return nil
}

func (s *vaultService) Settle(
	ctx context.Context, actor, vaultID string,
) (*SettlementInfo, error) {
	now := time.Now().Unix()

	var payout *domain.Payout
	_, err := s.updateVault(ctx, vaultID, func(v *domain.Vault) error {
		p, err := v.Settle(actor, now)
		if err != nil {
			return err
		}
		// Atomic multi-asset payout: a single failed transfer aborts
		// the whole settlement, registry removal included.
		if p.NativeAmount > 0 {
			if err := s.assetMover.TransferOut(
				ctx, domain.NativeAsset, actor, p.NativeAmount,
			); err != nil {
				return fmt.Errorf("%w: %s", ErrTransferFailed, err)
			}
		}
		for _, ta := range p.TokenAmounts {
			if ta.Amount <= 0 {
				continue
			}
			if err := s.assetMover.TransferOut(
				ctx, ta.Asset, actor, ta.Amount,
			); err != nil {
				return fmt.Errorf("%w: %s", ErrTransferFailed, err)
			}
		}
		payout = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	settlement := domain.Settlement{
		ID:           uuid.New().String(),
		VaultID:      vaultID,
		Beneficiary:  actor,
		NativeAmount: payout.NativeAmount,
		TokenAmounts: payout.TokenAmounts,
		Timestamp:    now,
	}
	if err := s.repoManager.SettlementRepository().AddSettlement(
		ctx, settlement,
	); err != nil {
		log.WithError(err).Warn("could not persist settlement record")
	}

	info := settlementInfoFromDomain(&settlement)
	s.publish(event{
		Topic:       TopicSettlement,
		VaultID:     vaultID,
		Actor:       actor,
		Beneficiary: actor,
		Payout:      info,
		Timestamp:   now,
	})
	return info, nil
}

func (s *vaultService) ListDeposits(
	ctx context.Context, vaultID string, page domain.Page,
) ([]DepositInfo, error) {
	deposits, err := s.repoManager.DepositRepository().ListDepositsForVault(
		ctx, vaultID, page,
	)
	if err != nil {
		return nil, err
	}

	infos := make([]DepositInfo, 0, len(deposits))
	for _, d := range deposits {
		infos = append(infos, DepositInfo{
			VaultID:   d.VaultID,
			Depositor: d.Depositor,
			Asset:     d.Asset,
			Amount:    d.Amount,
			Timestamp: d.Timestamp,
		})
	}
	return infos, nil
}

func (s *vaultService) ListWithdrawals(
	ctx context.Context, vaultID string, page domain.Page,
) ([]WithdrawalInfo, error) {
	withdrawals, err := s.repoManager.WithdrawalRepository().ListWithdrawalsForVault(
		ctx, vaultID, page,
	)
	if err != nil {
		return nil, err
	}

	infos := make([]WithdrawalInfo, 0, len(withdrawals))
	for _, w := range withdrawals {
		infos = append(infos, WithdrawalInfo{
			VaultID:   w.VaultID,
			Receiver:  w.Receiver,
			Asset:     w.Asset,
			Amount:    w.Amount,
			Timestamp: w.Timestamp,
		})
	}
	return infos, nil
}

func (s *vaultService) ListSettlements(
	ctx context.Context, vaultID string, page domain.Page,
) ([]SettlementInfo, error) {
	settlements, err := s.repoManager.SettlementRepository().ListSettlementsForVault(
		ctx, vaultID, page,
	)
	if err != nil {
		return nil, err
	}

	infos := make([]SettlementInfo, 0, len(settlements))
	for i := range settlements {
		infos = append(infos, *settlementInfoFromDomain(&settlements[i]))
	}
	return infos, nil
}

// updateVault runs the given mutation inside the repository's update
// closure and reports the vault's heartbeat after the update, or 0 when
// the mutation did not move the liveness clock.
func (s *vaultService) updateVault(
	ctx context.Context, vaultID string, mutate func(v *domain.Vault) error,
) (int64, error) {
	var heartbeat int64
	err := s.repoManager.VaultRepository().UpdateVault(
		ctx, vaultID, func(v *domain.Vault) (*domain.Vault, error) {
			prev := v.LastHeartbeat
			if err := mutate(v); err != nil {
				return nil, err
			}
			if v.LastHeartbeat != prev {
				heartbeat = v.LastHeartbeat
			}
			return v, nil
		},
	)
	if err != nil {
		return 0, err
	}
	return heartbeat, nil
}

func (s *vaultService) recordDeposit(ctx context.Context, deposit domain.Deposit) {
	if err := s.repoManager.DepositRepository().AddDeposit(ctx, deposit); err != nil {
		log.WithError(err).Warn("could not persist deposit record")
	}
}

func (s *vaultService) recordWithdrawal(
	ctx context.Context, withdrawal domain.Withdrawal,
) {
	if err := s.repoManager.WithdrawalRepository().AddWithdrawal(
		ctx, withdrawal,
	); err != nil {
		log.WithError(err).Warn("could not persist withdrawal record")
	}
}

type event struct {
	Topic         string          `json:"topic"`
	VaultID       string          `json:"vault_id"`
	Actor         string          `json:"actor,omitempty"`
	Asset         string          `json:"asset,omitempty"`
	Amount        uint64          `json:"amount,omitempty"`
	Beneficiary   string          `json:"beneficiary,omitempty"`
	LastHeartbeat int64           `json:"last_heartbeat,omitempty"`
	Payout        *SettlementInfo `json:"payout,omitempty"`
	Timestamp     int64           `json:"timestamp"`
}

func (s *vaultService) publishHeartbeat(vaultID string, heartbeat int64) {
	if heartbeat == 0 {
		return
	}
	s.publish(event{
		Topic:         TopicHeartbeat,
		VaultID:       vaultID,
		LastHeartbeat: heartbeat,
		Timestamp:     heartbeat,
	})
}

// publish notifies subscribers of a committed state change. Delivery
// failures are logged, never propagated: the state change already
// happened.
func (s *vaultService) publish(ev event) {
	if s.pubsub == nil {
		return
	}

	message, err := json.Marshal(ev)
	if err != nil {
		log.WithError(err).Warn("could not serialize event")
		return
	}
	if err := s.pubsub.Publish(ev.Topic, string(message)); err != nil {
		log.WithError(err).WithField("topic", ev.Topic).Warn(
			"could not publish event",
		)
	}
}
