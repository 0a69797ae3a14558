package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mem "whiskerverse/internal/adapters/storage/memory"
	pg "whiskerverse/internal/adapters/storage/postgres"
	"whiskerverse/internal/domain/catalog"
	"whiskerverse/internal/domain/cats"
	"whiskerverse/internal/domain/inventory"
	"whiskerverse/internal/domain/players"
	"whiskerverse/internal/domain/timers"
	"whiskerverse/internal/middleware"
	"whiskerverse/internal/ports/auth"
	"whiskerverse/internal/ports/storage"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Catalog *catalog.Catalog

	// AdminPlayerID habilita POST /admin/timers/reset para ese actor.
	AdminPlayerID string

	// CooldownSeconds resuelve el cooldown por acción (viene de la
	// config). nil => sin cooldowns.
	CooldownSeconds func(action string) int
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		catsRepo    cats.Repository
		playersRepo players.Repository
		timersRepo  timers.Repository
		invRepo     inventory.Repository
		tx          storage.TxRunner
	)

	if opts.DB != nil {
		catsRepo = pg.NewCatsRepo(opts.DB)
		playersRepo = pg.NewPlayersRepo(opts.DB)
		timersRepo = pg.NewTimersRepo(opts.DB)
		invRepo = pg.NewInventoryRepo(opts.DB)
		tx = pg.NewTxRunner(opts.DB)
	} else {
		catsRepo = mem.NewCatsRepo()
		playersRepo = mem.NewPlayersRepo()
		timersRepo = mem.NewTimersRepo()
		invRepo = mem.NewInventoryRepo()
		tx = mem.NewTxRunner(catsRepo, playersRepo, timersRepo, invRepo)
	}

	admin := timers.Authorizer(nil)
	if opts.AdminPlayerID != "" {
		adminID := opts.AdminPlayerID
		admin = func(playerID string) bool { return playerID == adminID }
	}

	// Services por módulo
	catsSvc := cats.NewService(catsRepo, cats.NewGenerator(opts.Catalog), tx)
	invSvc := inventory.NewService(invRepo)
	playersSvc := players.NewService(playersRepo, catsSvc, invSvc, tx)
	timersSvc := timers.NewService(timersRepo, admin)

	// Rutas por módulo
	cats.RegisterRoutes(r, catsSvc)
	players.RegisterRoutes(r, playersSvc, catsSvc, timersSvc, players.EncounterOptions{
		CooldownSeconds: opts.CooldownSeconds,
	})
	timers.RegisterRoutes(r, timersSvc)
	inventory.RegisterRoutes(r, invSvc)

	return r
}
