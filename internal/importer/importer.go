package importer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/conorfennell/flashdeck/internal/dedupe"
	"github.com/conorfennell/flashdeck/internal/domain"
	"github.com/conorfennell/flashdeck/internal/gitsource"
	"github.com/conorfennell/flashdeck/internal/parser"
	"github.com/conorfennell/flashdeck/internal/storage"
)

// Summary reports what one import run did.
type Summary struct {
	CategoryID int64
	Parsed     int
	Inserted   int
	Skipped    int
	Errors     []error
}

// Import loads deck files into a category. The source is either a
// local directory or a git URL; git sources are cloned (or pulled)
// under reposDir first. Every .md file under the source is parsed and
// each entry becomes a card in the named category, which is created
// if it does not exist yet. Entries whose content fingerprint already
// exists in the category are skipped, so re-importing the same deck
// is a no-op.
func Import(db *storage.DB, source, categoryName, reposDir string) (*Summary, error) {
	if gitsource.IsGitURL(source) {
		localPath, err := gitURLToLocalPath(reposDir, source)
		if err != nil {
			return nil, err
		}
		if err := gitsource.CloneOrPull(source, localPath); err != nil {
			return nil, err
		}
		source = localPath
	}

	category, err := findOrCreateCategory(db, categoryName, source)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, card := range category.Cards {
		seen[dedupe.Fingerprint(card.Title, card.Definition, card.Clue)] = true
	}

	summary := &Summary{CategoryID: category.ID}
	walkErr := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		entries, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			summary.Errors = append(summary.Errors, fmt.Errorf("parsing %s: %w", path, parseErr))
		}
		for _, entry := range entries {
			summary.Parsed++
			fp := dedupe.Fingerprint(entry.Title, entry.Definition, entry.Clue)
			if seen[fp] {
				summary.Skipped++
				continue
			}
			_, insertErr := db.InsertCard(storage.NewCard{
				CategoryID: category.ID,
				Title:      entry.Title,
				Definition: entry.Definition,
				Clue:       entry.Clue,
			})
			if insertErr != nil {
				summary.Errors = append(summary.Errors, fmt.Errorf("inserting card from %s: %w", path, insertErr))
				continue
			}
			seen[fp] = true
			summary.Inserted++
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk deck source %s: %w", source, walkErr)
	}

	slog.Info("import complete",
		"source", source,
		"category", categoryName,
		"parsed", summary.Parsed,
		"inserted", summary.Inserted,
		"skipped", summary.Skipped,
		"errors", len(summary.Errors),
	)
	return summary, nil
}

func findOrCreateCategory(db *storage.DB, name, source string) (*domain.Category, error) {
	categories, err := db.GetAllCategories()
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Name == name {
			return &categories[i], nil
		}
	}
	created, err := db.InsertCategory(storage.NewCategory{
		Name:        name,
		Description: fmt.Sprintf("Imported from %s", source),
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func gitURLToLocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http") {
		// scp-style addresses: git@host:user/repo.git
		if strings.Contains(repoURL, "@") {
			parts := strings.Split(repoURL, ":")
			if len(parts) == 2 {
				hostAndUser := strings.Split(parts[0], "@")
				if len(hostAndUser) == 2 {
					host := hostAndUser[1]
					repoPath := strings.TrimSuffix(parts[1], ".git")
					return filepath.Join(baseDir, host, repoPath), nil
				}
			}
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitizedPath := strings.TrimSuffix(parsedURL.Path, ".git")
	return filepath.Join(baseDir, parsedURL.Host, sanitizedPath), nil
}
