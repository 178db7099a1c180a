package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-pulse-api/internal/config"
	"github.com/vfg2006/sales-pulse-api/pkg/metrics"
)

const retentionRunTimeout = 5 * time.Minute

// UploadPurger remove uploads criados antes do corte
type UploadPurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// UploadRetentionConfig representa a configuração da limpeza de uploads
type UploadRetentionConfig struct {
	CronSchedule string
	Days         int
	Enabled      bool
}

// UploadRetentionService remove periodicamente os uploads mais antigos que a janela de retenção
type UploadRetentionService struct {
	scheduler       *gocron.Scheduler
	config          UploadRetentionConfig
	purger          UploadPurger
	now             func() time.Time
	running         bool
	mutex           sync.Mutex
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastRemoved     int
	lastError       string
}

// NewUploadRetentionService cria uma nova instância do serviço de retenção
func NewUploadRetentionService(purger UploadPurger, appConfig *config.Config) *UploadRetentionService {
	retentionConfig := UploadRetentionConfig{
		CronSchedule: appConfig.UploadRetention.CronSchedule,
		Days:         appConfig.UploadRetention.Days,
		Enabled:      appConfig.UploadRetention.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": retentionConfig.CronSchedule,
		"days":          retentionConfig.Days,
		"enabled":       retentionConfig.Enabled,
	}).Info("Configuração da retenção de uploads carregada")

	return &UploadRetentionService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    retentionConfig,
		purger:    purger,
		now:       time.Now,
	}
}

// Start inicia o agendador
func (s *UploadRetentionService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Retenção de uploads desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de retenção de uploads")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.run()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar retenção de uploads: %w", err)
	}

	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de retenção de uploads")
		s.scheduler.Stop()
	}()

	return nil
}

// Cutoff é o instante antes do qual os uploads expiram
func (s *UploadRetentionService) Cutoff() time.Time {
	return s.now().AddDate(0, 0, -s.config.Days)
}

func (s *UploadRetentionService) run() {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		logrus.Info("Retenção de uploads já em andamento, ignorando")
		return
	}
	s.running = true
	s.lastStartedAt = s.now()
	s.mutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), retentionRunTimeout)
	defer cancel()

	cutoff := s.Cutoff()
	removed, err := s.purger.PurgeOlderThan(ctx, cutoff)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.running = false
	s.lastCompletedAt = s.now()

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Erro na retenção de uploads")
		return
	}

	s.lastError = ""
	s.lastRemoved = removed
	metrics.AddRetentionRemoved(removed)

	logrus.WithFields(logrus.Fields{
		"cutoff":  cutoff.Format(time.RFC3339),
		"removed": removed,
	}).Info("Retenção de uploads concluída")
}

// TriggerManualSync dispara a limpeza fora do horário agendado
func (s *UploadRetentionService) TriggerManualSync() {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		logrus.Info("Retenção de uploads já em andamento, ignorando solicitação manual")
		return
	}
	s.mutex.Unlock()

	logrus.Info("Iniciando retenção manual de uploads")
	go s.run()
}

// GetStatus retorna o status atual da retenção
func (s *UploadRetentionService) GetStatus() map[string]any {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return map[string]any{
		"sync_running":           s.running,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.Enabled,
		"retention_days":         s.config.Days,
		"last_sync_started_at":   s.lastStartedAt,
		"last_sync_completed_at": s.lastCompletedAt,
		"last_removed":           s.lastRemoved,
		"last_error":             s.lastError,
	}
}
