package config

import (
	"fmt"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/go-co-op/gocron/v2"
)

// ValidationError 单项配置错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors 配置错误集合
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("配置校验失败:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validator 配置校验器
type Validator struct {
	errors ValidationErrors
}

// NewValidator 创建配置校验器
func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) addError(field, message string) {
	v.errors = append(v.errors, ValidationError{Field: field, Message: message})
}

// Validate 校验整个配置
func (v *Validator) Validate(cfg *Config) error {
	v.errors = nil

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		v.addError("server.port", "muss zwischen 1 und 65535 liegen")
	}
	if !slice.Contain([]string{"mysql", "postgres", "sqlite"}, cfg.Database.Driver) {
		v.addError("database.driver", "unbekannter Treiber "+cfg.Database.Driver)
	}
	if cfg.Database.Driver != "sqlite" && cfg.Database.Host == "" {
		v.addError("database.host", "darf nicht leer sein")
	}
	if !slice.Contain([]string{"debug", "info", "warn", "error"}, cfg.Log.Level) {
		v.addError("log.level", "muss debug, info, warn oder error sein")
	}
	if cfg.Log.Output == "file" && cfg.Log.FilePath == "" {
		v.addError("log.file_path", "für Dateiausgabe erforderlich")
	}
	if cfg.SaToken.Timeout == 0 {
		v.addError("sa_token.timeout", "darf nicht 0 sein")
	}
	if cfg.GBU.MaxUploadMB <= 0 {
		v.addError("gbu.max_upload_mb", "muss positiv sein")
	}
	if cfg.Scheduler.Enabled {
		v.validateCron("scheduler.status_cron", cfg.Scheduler.StatusCron)
		v.validateCron("scheduler.audit_cron", cfg.Scheduler.AuditCron)
	}
	if cfg.Scheduler.AuditRetentionDays < 0 {
		v.addError("scheduler.audit_retention_days", "darf nicht negativ sein")
	}

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

// validateCron 用 gocron 的解析器校验表达式
func (v *Validator) validateCron(field, expr string) {
	if expr == "" {
		v.addError(field, "darf nicht leer sein")
		return
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		v.addError(field, err.Error())
		return
	}
	defer func() { _ = s.Shutdown() }()
	if _, err := s.NewJob(gocron.CronJob(expr, false), gocron.NewTask(func() {})); err != nil {
		v.addError(field, "ungültiger Cron-Ausdruck: "+err.Error())
	}
}
