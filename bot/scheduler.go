package bot

import (
	"log"
	"sync"
	"time"

	"guessr-bot/ingest"
	"guessr-bot/utils"
)

// Scheduler runs the periodic catalog refresh.
type Scheduler struct {
	bot  *Bot
	done chan struct{}
	wg   sync.WaitGroup
}

func NewScheduler(bot *Bot) *Scheduler {
	return &Scheduler{
		bot:  bot,
		done: make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	cfg := s.bot.Config.Game
	if cfg.SonglistURL == "" || cfg.RefreshMinutes <= 0 {
		return
	}
	s.wg.Add(1)
	go s.runCatalogRefresh(time.Duration(cfg.RefreshMinutes) * time.Minute)
}

func (s *Scheduler) Stop() {
	close(s.done)
	s.wg.Wait()
}

func (s *Scheduler) runCatalogRefresh(interval time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cfg := s.bot.Config
			if err := ingest.Refresh(s.bot.Catalog, cfg.Game.SonglistURL, cfg.Game.AliasCSVURL); err != nil {
				log.Printf("Scheduled catalog refresh failed: %v", err)
				utils.LogError(cfg.LogWebhookURL, "ingest", "refresh", err.Error())
			}
		case <-s.done:
			return
		}
	}
}
