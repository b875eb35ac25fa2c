package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"cartload/pkg/errors"
)

// Service provides MySQL operations for the pipeline: schema rebuild, bulk
// load, and view creation. One run assumes exclusive ownership of its target
// database.
type Service struct {
	db        *sql.DB
	config    Config
	connected bool
}

// Config holds MySQL connection configuration
type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Timeout  time.Duration
}

// NewService creates a new warehouse service
func NewService(config Config) *Service {
	return &Service{config: config}
}

// Connect establishes a connection to the MySQL server. The target database
// may not exist yet, so the DSN carries no database name; Rebuild creates it.
func (s *Service) Connect() error {
	if s.connected {
		return nil
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/?parseTime=true",
		s.config.Username,
		s.config.Password,
		s.config.Host,
		s.config.Port,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return errors.ConnectionError("Failed to open MySQL connection", err).
			WithContext("host", s.config.Host)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(10 * time.Minute)

	ctx, cancel := s.getContext()
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()

		if strings.Contains(err.Error(), "Access denied") {
			return errors.New(errors.ErrCodeAuthenticationFailed, "Authentication failed").
				WithContext("user", s.config.Username).
				WithSuggestions(
					"Verify your username and password",
					"Check the user's host grants on the MySQL server",
				)
		}

		return errors.ConnectionError("Failed to connect to MySQL", err).
			WithContext("host", s.config.Host).
			WithContext("port", s.config.Port)
	}

	s.db = db
	s.connected = true
	return nil
}

// Close closes the database connection
func (s *Service) Close() error {
	if !s.connected {
		return nil
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	s.connected = false
	return nil
}

// TestConnection tests the database connection
func (s *Service) TestConnection() error {
	if !s.connected {
		if err := s.Connect(); err != nil {
			return err
		}
	}

	ctx, cancel := s.getContext()
	defer cancel()

	return s.db.PingContext(ctx)
}

func (s *Service) getContext() (context.Context, context.CancelFunc) {
	timeout := s.config.Timeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	return context.WithTimeout(context.Background(), timeout)
}

// ValidateConfig validates the MySQL configuration
func ValidateConfig(config Config) error {
	if config.Host == "" {
		return fmt.Errorf("host is required")
	}
	if config.Port == 0 {
		return fmt.Errorf("port is required")
	}
	if config.Database == "" {
		return fmt.Errorf("database is required")
	}
	if config.Username == "" {
		return fmt.Errorf("username is required")
	}
	if config.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}
