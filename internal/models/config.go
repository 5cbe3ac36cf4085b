package models

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type CommentData struct {
	Comment string `mapstructure:"comment"`
	Liked   bool   `mapstructure:"liked"`
}

type PersonaData struct {
	Persona       string `mapstructure:"persona"`
	FavoriteDrink string `mapstructure:"favorite_drink"`
	SweetTooth    bool   `mapstructure:"sweet_tooth"`
}

type Config struct {
	Seed               int       `mapstructure:"seed"`
	StartDate          time.Time `mapstructure:"start_date"`
	Days               int       `mapstructure:"days"`
	OpeningHour        int       `mapstructure:"opening_hour"`
	ClosingHour        int       `mapstructure:"closing_hour"`
	InitialMoney       float64   `mapstructure:"initial_money"`
	InitialCustomers   int       `mapstructure:"initial_customers"`
	CustomerGrowthRate float64   `mapstructure:"customer_growth_rate"`
	VisitFrequency     float64   `mapstructure:"visit_frequency"`
	PeakHourFactor     float64   `mapstructure:"peak_hour_factor"`
	WeekendFactor      float64   `mapstructure:"weekend_factor"`
	BrewSkill          float64   `mapstructure:"brew_skill"`
	BrewVariability    float64   `mapstructure:"brew_variability"`
	FoodAttachRate     float64   `mapstructure:"food_attach_rate"`
	ModifierRate       float64   `mapstructure:"modifier_rate"`
	BaseTipRate        float64   `mapstructure:"base_tip_rate"`
	UpgradeReserve     float64   `mapstructure:"upgrade_reserve"`
	KafkaEnabled       bool      `mapstructure:"kafka_enabled"`
	KafkaBrokerList    string    `mapstructure:"kafka_broker_list"`
	SessionTimeoutMs   int       `mapstructure:"session_timeout_ms"`
	OutputFile         string    `mapstructure:"output_file_path"`
	OutputFolder       string    `mapstructure:"output_folder"`
	OutputFormat       string    `mapstructure:"output_format"`
	OutputDestination  string    `mapstructure:"output_destination"`
	Continuous         bool      `mapstructure:"continuous"`
	// Session persistence
	SessionDB   string `mapstructure:"session_db"`
	SessionName string `mapstructure:"session_name"`
	AutoSave    bool   `mapstructure:"auto_save"`
	// Telemetry sink
	PostgresEnabled bool   `mapstructure:"postgres_enabled"`
	PostgresConnStr string `mapstructure:"postgres_conn_str"`
	// Cloud export, used when output_destination is not "local"
	CloudBucketName string `mapstructure:"cloud_bucket_name"`
	CloudRegion     string `mapstructure:"cloud_region"`

	CommentData []CommentData `mapstructure:"comment_data"`
	PersonaData []PersonaData `mapstructure:"persona_data"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	// Sensible defaults so a bare config file still runs a full week
	viper.SetDefault("start_date", time.Now().Format(time.RFC3339))
	viper.SetDefault("days", 7)
	viper.SetDefault("opening_hour", 7)
	viper.SetDefault("closing_hour", 21)
	viper.SetDefault("initial_money", 500.0)
	viper.SetDefault("initial_customers", 25)
	viper.SetDefault("visit_frequency", 0.15)
	viper.SetDefault("brew_skill", 0.7)
	viper.SetDefault("brew_variability", 1.0)
	viper.SetDefault("upgrade_reserve", 200.0)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

// LoadCommentData reads tab-separated comment templates (comment, liked)
// used for customer flavor text.
func (cfg *Config) LoadCommentData(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '\t'
	reader.Read()

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(fields) < 2 {
			return fmt.Errorf("comment data %s: row has %d of 2 columns", filePath, len(fields))
		}
		liked, _ := strconv.ParseBool(fields[1])
		comment := CommentData{
			Comment: fields[0],
			Liked:   liked,
		}
		cfg.CommentData = append(cfg.CommentData, comment)
	}

	return nil
}

// LoadPersonaData reads tab-separated customer personas
// (persona, favorite_drink, sweet_tooth) used when seeding the
// neighborhood.
func (cfg *Config) LoadPersonaData(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '\t'
	reader.Read()

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(fields) < 3 {
			return fmt.Errorf("persona data %s: row has %d of 3 columns", filePath, len(fields))
		}
		sweetTooth, _ := strconv.ParseBool(fields[2])
		persona := PersonaData{
			Persona:       fields[0],
			FavoriteDrink: fields[1],
			SweetTooth:    sweetTooth,
		}
		cfg.PersonaData = append(cfg.PersonaData, persona)
	}

	return nil
}
