package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// ListeningPortKey is the port where the REST interface will listen on
	ListeningPortKey = "LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// AssetServiceAddrKey is the http(s) endpoint of the external asset ledger
	// used to move funds in and out of custody
	AssetServiceAddrKey = "ASSET_SERVICE_ADDR"
	// CustodyAccountKey is the ledger account holding every vault's funds
	CustodyAccountKey = "CUSTODY_ACCOUNT"
	// AuthSecretKey is the HS256 secret used to verify bearer tokens. When
	// empty, tokens are trusted without signature verification
	AuthSecretKey = "AUTH_SECRET"
	// NoWebhooksKey is used to start the daemon without the webhook
	// notification service
	NoWebhooksKey = "NO_WEBHOOKS"
	// TransferTimeoutKey is the duration in seconds after which a pending
	// transfer on the asset ledger is given up on
	TransferTimeoutKey = "TRANSFER_TIMEOUT"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("heirvault-daemon", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("HEIRVAULT")
	vip.AutomaticEnv()

	vip.SetDefault(ListeningPortKey, 9945)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(NoWebhooksKey, false)
	vip.SetDefault(TransferTimeoutKey, 15)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	port := GetInt(ListeningPortKey)
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s must be in range [1, 65535]", ListeningPortKey)
	}

	if !vip.IsSet(AssetServiceAddrKey) {
		return fmt.Errorf("missing asset service address")
	}
	if !validateEndpoint(GetString(AssetServiceAddrKey)) {
		return fmt.Errorf(
			"please provide a valid http(s) url for %s", AssetServiceAddrKey,
		)
	}

	if !vip.IsSet(CustodyAccountKey) {
		return fmt.Errorf("missing custody account")
	}

	if GetInt(TransferTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be a positive number of seconds", TransferTimeoutKey)
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(filepath.Join(GetDatadir(), DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

func validateEndpoint(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
