package deps

import (
	"time"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
	"github.com/MrSnakeDoc/bookmarks/internal/metrics"
)

type Deps struct {
	Logger                logger.Logger
	StartTime             time.Time
	Version               string
	Commit                string
	BuildDate             string
	GoVersion             string
	TimeNow               func() time.Time  // for testing, defaults to time.Now
	AllowedHosts          []string          // Host headers allowed to access bookmark routes
	AllowedCIDRS          []string          // IPs allowed to access healthz/readyz/infra/metrics endpoints
	TrustProxy            bool              // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Bookmarks             domain.Repository // Record store
	SeedSource            string            // Where the initial bookmarks came from ("file:<path>", "default", "none")
	Metrics               *metrics.Manager  // Prometheus metrics
	RateLimitBurst        int               // Write requests per client IP in a burst (0 = disabled)
	RateLimitRefillPerMin int               // Tokens refilled per client IP per minute
}
