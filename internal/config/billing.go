package config

import (
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// BillingConfig carries the operator-tunable billing policy.
type BillingConfig struct {
	Currency   string `mapstructure:"currency"`
	MinorUnits int32  `mapstructure:"minorUnits"`
	// DueDayOffset, when set, places the due date N days after the period start.
	// When unset the due date is the last day of the period month.
	DueDayOffset       *int          `mapstructure:"dueDayOffset"`
	LockTTL            time.Duration `mapstructure:"lockTTL"`
	RecentInvoiceLimit int           `mapstructure:"recentInvoiceLimit"`
}

func DefaultBillingConfig() BillingConfig {
	return BillingConfig{
		Currency:           "VND",
		MinorUnits:         0,
		LockTTL:            5 * time.Second,
		RecentInvoiceLimit: 5,
	}
}

type BillingConfigHolder struct {
	current atomic.Value // holds BillingConfig
}

// NewStaticBillingConfig returns a holder that never reloads.
func NewStaticBillingConfig(cfg BillingConfig) *BillingConfigHolder {
	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewBillingConfigHolder(log *zap.Logger) (*BillingConfigHolder, error) {
	log = log.Named("billing.config")

	v := viper.New()
	v.SetConfigName("billing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/boardinghouse")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BOARDINGHOUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultBillingConfig()
	v.SetDefault("billing.currency", defaults.Currency)
	v.SetDefault("billing.minorUnits", defaults.MinorUnits)
	v.SetDefault("billing.lockTTL", defaults.LockTTL)
	v.SetDefault("billing.recentInvoiceLimit", defaults.RecentInvoiceLimit)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileFound = false
	}

	var cfg BillingConfig
	if err := v.UnmarshalKey("billing", &cfg); err != nil {
		return nil, err
	}
	if err := validateBillingConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticBillingConfig(cfg)

	if fileFound {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			var updated BillingConfig
			if err := v.UnmarshalKey("billing", &updated); err != nil {
				log.Warn("billing config reload failed", zap.String("file", e.Name), zap.Error(err))
				return
			}
			if err := validateBillingConfig(updated); err != nil {
				log.Warn("invalid billing config ignored", zap.String("file", e.Name), zap.Error(err))
				return
			}
			holder.current.Store(updated)
			log.Info("billing config reloaded", zap.String("file", e.Name))
		})
	}

	return holder, nil
}

func (h *BillingConfigHolder) Get() BillingConfig {
	return h.current.Load().(BillingConfig)
}

func validateBillingConfig(cfg BillingConfig) error {
	if strings.TrimSpace(cfg.Currency) == "" {
		return errors.New("billing.currency cannot be empty")
	}
	if cfg.MinorUnits < 0 || cfg.MinorUnits > 4 {
		return errors.New("billing.minorUnits must be between 0 and 4")
	}
	if cfg.DueDayOffset != nil && (*cfg.DueDayOffset < 0 || *cfg.DueDayOffset > 365) {
		return errors.New("billing.dueDayOffset must be between 0 and 365")
	}
	if cfg.RecentInvoiceLimit < 0 {
		return errors.New("billing.recentInvoiceLimit cannot be negative")
	}
	return nil
}
