package seed

import (
	"github.com/MrSnakeDoc/bookmarks/internal/domain"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

// Default returns the bookmark a fresh store starts with when no seed file is configured.
func Default() File {
	return File{
		Bookmarks: []Entry{
			{
				URL:         "https://docs.nestjs.com/",
				Description: "NestJS Documentation",
			},
		},
	}
}

// Apply creates every entry of file in repo, in file order.
// Entries without a url are skipped. Returns the number of bookmarks created.
func Apply(repo domain.Repository, file File, log logger.Logger) int {
	created := 0
	for i, entry := range file.Bookmarks {
		if entry.URL == "" {
			log.Warn("skipping seed entry without url",
				logger.Int("index", i),
				logger.String("description", entry.Description))
			continue
		}

		b := repo.Create(entry.URL, entry.Description)
		log.Debug("seeded bookmark",
			logger.String("bookmark_id", b.ID),
			logger.String("url", b.URL))
		created++
	}
	return created
}
