package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// HTTPPortKey is the port where the REST interface will listen on.
	HTTPPortKey = "HTTP_PORT"
	// DatadirKey is the local data directory to store the internal state of the daemon.
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// GiftExpiryDurationKey is the validity window of a gift in seconds. Within it only the recipient can claim, after it only the sender can refund.
	GiftExpiryDurationKey = "GIFT_EXPIRY_DURATION"
	// BaseURLKey is the public base URL the shareable claim links are rooted at.
	BaseURLKey = "BASE_URL"
	// AssetKey is the mint address of the escrowed asset. Default is devnet USDC.
	AssetKey = "ASSET"
	// AssetDecimalsKey is the number of decimals of the escrowed asset.
	AssetDecimalsKey = "ASSET_DECIMALS"
	// EscrowProgramIdKey is the program id owning the derived escrow and vault addresses.
	EscrowProgramIdKey = "ESCROW_PROGRAM_ID"
	// WebhookEndpointKey is the optional HTTP endpoint notified of settlement events.
	WebhookEndpointKey = "WEBHOOK_ENDPOINT"
	// NoAuthKey disables signed-request verification. Meant for development only.
	NoAuthKey = "NO_AUTH"

	DbLocation    = "db"
	IndexLocation = "index"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("solpacketd", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("SOLPACKET")
	vip.AutomaticEnv()

	vip.SetDefault(HTTPPortKey, 9908)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(GiftExpiryDurationKey, 86400)
	vip.SetDefault(BaseURLKey, "http://localhost:9908")
	vip.SetDefault(AssetKey, "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU")
	vip.SetDefault(AssetDecimalsKey, 6)
	vip.SetDefault(EscrowProgramIdKey, "AiebTbnydag8QCPFhapiuPzd5hy8MvKNXeVVYR2dZ94Z")
	vip.SetDefault(WebhookEndpointKey, "")
	vip.SetDefault(NoAuthKey, false)
}

// Validate checks the config and panics on invalid values. Called once by the
// daemon at startup.
func Validate() {
	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

// GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

// GetDatadir returns the data directory of the daemon.
func GetDatadir() string {
	return vip.GetString(DatadirKey)
}

// GetDbDir returns the location of the escrow db inside the datadir.
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

// GetIndexDir returns the location of the gift index db inside the datadir.
func GetIndexDir() string {
	return filepath.Join(GetDatadir(), IndexLocation)
}

// GetProgramID returns the escrow program id as a public key.
func GetProgramID() solana.PublicKey {
	return solana.MustPublicKeyFromBase58(vip.GetString(EscrowProgramIdKey))
}

// Set ...
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

func validate() error {
	if _, err := solana.PublicKeyFromBase58(vip.GetString(EscrowProgramIdKey)); err != nil {
		return fmt.Errorf("invalid escrow program id: %w", err)
	}
	if _, err := solana.PublicKeyFromBase58(vip.GetString(AssetKey)); err != nil {
		return fmt.Errorf("invalid asset mint: %w", err)
	}
	if vip.GetInt(GiftExpiryDurationKey) <= 0 {
		return fmt.Errorf("%s must be a positive number of seconds", GiftExpiryDurationKey)
	}
	if _, err := url.Parse(vip.GetString(BaseURLKey)); err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	if endpoint := vip.GetString(WebhookEndpointKey); endpoint != "" {
		if _, err := url.ParseRequestURI(endpoint); err != nil {
			return fmt.Errorf("invalid webhook endpoint: %w", err)
		}
	}
	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	for _, dir := range []string{datadir, GetDbDir(), GetIndexDir()} {
		if err := makeDirectoryIfNotExists(dir); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
