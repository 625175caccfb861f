package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/tidycrew-dev/clean-manager/backend/internal/config"
	"github.com/tidycrew-dev/clean-manager/backend/internal/repository"
	"github.com/tidycrew-dev/clean-manager/backend/internal/seed"
	"github.com/tidycrew-dev/clean-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation (1: insert random cleaners, 2: insert random clients with contracts, 3: insert random jobs, 4: insert random absence requests, 5: seed demo data)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create the database connection pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not dial, ping to verify the DSN
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	// everything is seeded into the initial company
	company, err := repo.GetCompanyByName(cfg.InitialCompany.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			logger.Error("the initial company does not exist yet, start the api server first")
		default:
			logger.Error("failed to look up the initial company", "error", err)
		}
		return
	}

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("please give a valid number of cleaners")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			cleaner, err := utils.GenerateRandomCleaner(company.ID, cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("failed to generate a cleaner", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(cleaner); err != nil {
				slog.Error("failed to insert a cleaner", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("cleaners inserted", slog.Int("count", n-cnt))
	case 2:
		if n <= 0 {
			slog.Error("please give a valid number of clients")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			client := utils.GenerateRandomClient(company.ID)
			if err := repo.CreateClient(client); err != nil {
				slog.Error("failed to insert a client", slog.String("error", err.Error()))
				continue
			}

			contract := utils.GenerateRandomContract(company.ID, client.ID)
			if err := repo.CreateContract(contract); err != nil {
				slog.Error("failed to insert a contract", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("clients inserted", slog.Int("count", n-cnt))
	case 3:
		if n <= 0 {
			slog.Error("please give a valid number of jobs")
			return
		}

		clients, err := repo.GetAllClients(company.ID)
		if err != nil {
			slog.Error("failed to fetch the clients", slog.String("error", err.Error()))
			return
		}
		cleaners, err := repo.ActiveCleaners(company.ID)
		if err != nil {
			slog.Error("failed to fetch the cleaners", slog.String("error", err.Error()))
			return
		}
		if len(clients) == 0 || len(cleaners) == 0 {
			slog.Error("seed clients and cleaners first")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			client := clients[rand.Intn(len(clients))]
			cleaner := cleaners[rand.Intn(len(cleaners))]

			job := utils.GenerateRandomJob(company.ID, client.ID, cleaner.ID)
			if err := repo.CreateJob(job); err != nil {
				slog.Error("failed to insert a job", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("jobs inserted", slog.Int("count", n-cnt))
	case 4:
		if n <= 0 {
			slog.Error("please give a valid number of absence requests")
			return
		}

		cleaners, err := repo.ActiveCleaners(company.ID)
		if err != nil {
			slog.Error("failed to fetch the cleaners", slog.String("error", err.Error()))
			return
		}
		if len(cleaners) == 0 {
			slog.Error("seed cleaners first")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			cleaner := cleaners[rand.Intn(len(cleaners))]

			request := utils.GenerateRandomAbsenceRequest(company.ID, cleaner.ID)
			if err := repo.CreateAbsenceRequest(request); err != nil {
				slog.Error("failed to insert an absence request", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("absence requests inserted", slog.Int("count", n-cnt))
	case 5:
		seed.SeedDemoData(repo, cfg, company.ID)
	default:
		slog.Error("unknown operation")
	}
}
