package configs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quochao170402/cekspek/internal/repository"
)

// OpenStore connects to the configured driver.
func OpenStore(ctx context.Context, cfg *Config, logger *zap.Logger) (*repository.Store, error) {
	switch cfg.StoreDriver {
	case repository.DriverDynamoDB:
		client, err := NewDynamoClient(ctx, cfg.Dynamo)
		if err != nil {
			return nil, err
		}
		logger.Info("using dynamodb store", zap.String("prefix", cfg.Dynamo.TablePrefix))
		return repository.NewDynamoStore(client, cfg.Dynamo.TablePrefix, logger), nil
	default:
		db, err := SetupDatabase(cfg.Database, cfg.App.Development())
		if err != nil {
			return nil, err
		}
		logger.Info("using postgres store", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.Name))
		return repository.NewGormStore(db), nil
	}
}

func SetupDatabase(dbCfg DatabaseConfig, verbose bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if verbose {
		level = gormlogger.Info
	}
	database, err := gorm.Open(postgres.Open(dbCfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return database, nil
}

// NewDynamoClient loads the default AWS configuration from the environment.
func NewDynamoClient(ctx context.Context, dyn DynamoConfig) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if dyn.Endpoint != "" {
			o.BaseEndpoint = aws.String(dyn.Endpoint)
		}
	}), nil
}
