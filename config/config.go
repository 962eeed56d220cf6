package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"pcquote/services"
)

// Config holds all configuration for the application
type Config struct {
	Business  BusinessConfig  `mapstructure:"business"`
	Pricing   PricingConfig   `mapstructure:"pricing"`
	Territory TerritoryConfig `mapstructure:"territory"`
	Log       LogConfig       `mapstructure:"log"`
}

// BusinessConfig is the owner block printed on quotes and mail drafts
type BusinessConfig struct {
	Name    string `mapstructure:"name"`
	City    string `mapstructure:"city"`
	Phone   string `mapstructure:"phone"`
	Email   string `mapstructure:"email"`
	Tagline string `mapstructure:"tagline"`
}

// PricingConfig holds the labor and tax constants. Amounts are decimal
// strings so they are parsed exactly.
type PricingConfig struct {
	TaxRate       string `mapstructure:"tax_rate"`
	LaborBuild    string `mapstructure:"labor_build"`
	LaborOSTuning string `mapstructure:"labor_os_tuning"`
	PriceSheet    string `mapstructure:"price_sheet"`
}

// TerritoryConfig holds the local service area rules
type TerritoryConfig struct {
	Prefix    string   `mapstructure:"prefix"`
	AllowList []string `mapstructure:"allow_list"`
}

// LogConfig holds logrus settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EnvPrefix is prepended to every environment override, e.g.
// PCQUOTE_PRICING_TAX_RATE.
const EnvPrefix = "PCQUOTE"

// Load reads configuration from path (YAML, TOML or JSON by extension) with
// environment variable overrides. An empty path looks for pcquote.yaml in
// the working directory and falls back to defaults when there is none.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("pcquote")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	b := services.DefaultBusiness
	v.SetDefault("business.name", b.Name)
	v.SetDefault("business.city", b.City)
	v.SetDefault("business.phone", b.Phone)
	v.SetDefault("business.email", b.Email)
	v.SetDefault("business.tagline", b.Tagline)

	v.SetDefault("pricing.tax_rate", services.DefaultTaxRate.String())
	v.SetDefault("pricing.labor_build", services.DefaultLabor.Build.String())
	v.SetDefault("pricing.labor_os_tuning", services.DefaultLabor.OSTuning.String())
	v.SetDefault("pricing.price_sheet", "")

	v.SetDefault("territory.prefix", services.DefaultTerritoryPrefix)
	v.SetDefault("territory.allow_list", services.DefaultAllowList())

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Shop builds the immutable shop from the configuration. The preset
// self-check runs here, so a bad price list or preset fails startup.
func (c *Config) Shop() (*services.Shop, error) {
	rate, err := services.ParseTaxRate(c.Pricing.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("pricing.tax_rate: %w", err)
	}
	build, err := services.ParseCents(c.Pricing.LaborBuild)
	if err != nil {
		return nil, fmt.Errorf("pricing.labor_build: %w", err)
	}
	tuning, err := services.ParseCents(c.Pricing.LaborOSTuning)
	if err != nil {
		return nil, fmt.Errorf("pricing.labor_os_tuning: %w", err)
	}
	labor := services.Labor{Build: build, OSTuning: tuning}

	var cat *services.Catalog
	if c.Pricing.PriceSheet != "" {
		cat, err = loadPriceSheet(c.Pricing.PriceSheet, labor, rate)
	} else {
		cat, err = services.NewCatalog(services.DefaultTiers(), services.DefaultExtras(), labor, rate)
	}
	if err != nil {
		return nil, err
	}

	territory, err := services.NewTerritory(c.Territory.Prefix, c.Territory.AllowList)
	if err != nil {
		return nil, err
	}

	business := services.Business{
		Name:    c.Business.Name,
		City:    c.Business.City,
		Phone:   c.Business.Phone,
		Email:   c.Business.Email,
		Tagline: c.Business.Tagline,
	}
	return services.NewShop(business, cat, services.DefaultPresets(), territory)
}

func loadPriceSheet(path string, labor services.Labor, rate services.TaxRate) (*services.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pricing.price_sheet: %w", err)
	}
	defer f.Close()

	sheet, err := services.ParsePriceSheet(f, path)
	if err != nil {
		return nil, fmt.Errorf("pricing.price_sheet: %w", err)
	}
	log.WithFields(log.Fields{
		"file":   path,
		"rows":   sheet.TotalRows,
		"errors": sheet.ErrorRows,
	}).Info("Loaded price sheet")

	return sheet.Catalog(labor, rate)
}

// ApplyLogging configures the global logrus logger.
func (l LogConfig) ApplyLogging() error {
	level, err := log.ParseLevel(l.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	log.SetLevel(level)

	switch strings.ToLower(l.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("log.format: unknown format %q", l.Format)
	}
	return nil
}
