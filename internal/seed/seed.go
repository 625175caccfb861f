// Package seed fills a development database with a small coherent data set:
// cleaners with weekly availability, clients with contracts and a couple of
// weeks of jobs.
package seed

import (
	"log/slog"
	"math/rand"

	"github.com/tidycrew-dev/clean-manager/backend/internal/config"
	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
	"github.com/tidycrew-dev/clean-manager/backend/internal/repository"
	"github.com/tidycrew-dev/clean-manager/backend/internal/utils"
)

// weekday windows assigned to seeded cleaners, Monday through Friday
var weekdayWindows = []struct {
	StartTime string
	EndTime   string
}{
	{"08:00:00", "12:00:00"},
	{"08:00:00", "17:00:00"},
	{"12:00:00", "18:00:00"},
}

func SeedDemoData(repo *repository.Repository, cfg *config.Config, companyID int64) {
	// cleaners with weekly templates
	cleaners := []*domain.User{}
	for i := 0; i < 6; i++ {
		cleaner, err := utils.GenerateRandomCleaner(companyID, cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("failed to generate a cleaner", slog.String("error", err.Error()))
			continue
		}
		if err := repo.CreateUser(cleaner); err != nil {
			slog.Error("failed to insert a cleaner", slog.String("error", err.Error()))
			continue
		}
		cleaners = append(cleaners, cleaner)

		// every other cleaner stays unconstrained
		if i%2 == 0 {
			window := weekdayWindows[rand.Intn(len(weekdayWindows))]
			template := []*domain.CleanerAvailability{}
			for day := int32(1); day <= 5; day++ {
				template = append(template, &domain.CleanerAvailability{
					CompanyID:   companyID,
					CleanerID:   cleaner.ID,
					DayOfWeek:   day,
					IsAvailable: true,
					StartTime:   window.StartTime,
					EndTime:     window.EndTime,
				})
			}
			if err := repo.ReplaceWeeklyAvailability(companyID, cleaner.ID, template); err != nil {
				slog.Error("failed to insert a weekly template", slog.String("error", err.Error()))
			}
		}
	}

	if len(cleaners) == 0 {
		slog.Error("no cleaners were seeded, stopping")
		return
	}

	// clients with contracts and jobs
	jobCount := 0
	for i := 0; i < 8; i++ {
		client := utils.GenerateRandomClient(companyID)
		if err := repo.CreateClient(client); err != nil {
			slog.Error("failed to insert a client", slog.String("error", err.Error()))
			continue
		}

		contract := utils.GenerateRandomContract(companyID, client.ID)
		if err := repo.CreateContract(contract); err != nil {
			slog.Error("failed to insert a contract", slog.String("error", err.Error()))
			continue
		}

		for j := 0; j < rand.Intn(3)+1; j++ {
			cleaner := cleaners[rand.Intn(len(cleaners))]
			job := utils.GenerateRandomJob(companyID, client.ID, cleaner.ID)
			if err := repo.CreateJob(job); err != nil {
				slog.Error("failed to insert a job", slog.String("error", err.Error()))
				continue
			}
			jobCount++
		}
	}

	// a few pending absence requests
	for i := 0; i < 3; i++ {
		cleaner := cleaners[rand.Intn(len(cleaners))]
		request := utils.GenerateRandomAbsenceRequest(companyID, cleaner.ID)
		if err := repo.CreateAbsenceRequest(request); err != nil {
			slog.Error("failed to insert an absence request", slog.String("error", err.Error()))
		}
	}

	slog.Info("demo data seeded", slog.Int("cleaners", len(cleaners)), slog.Int("jobs", jobCount))
}
