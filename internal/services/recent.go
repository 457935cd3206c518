package services

import (
	"context"
	"fmt"

	"text-viewer/internal/apperr"
	"text-viewer/internal/host"
	"text-viewer/internal/logger"
	"text-viewer/internal/models"
	"text-viewer/internal/storage"
)

const recentComponent = "RecentFiles"

// RecentFilesService persists the recent files list behind a repository
type RecentFilesService struct {
	store      storage.StringSetStore
	key        string
	resolver   host.NameResolver
	repository *models.RecentFilesRepository
	logger     logger.Logger
}

func NewRecentFilesService(
	store storage.StringSetStore,
	key string,
	resolver host.NameResolver,
	repo *models.RecentFilesRepository,
	log logger.Logger,
) *RecentFilesService {
	return &RecentFilesService{
		store:      store,
		key:        key,
		resolver:   resolver,
		repository: repo,
		logger:     log,
	}
}

// Load reads the stored references and resolves each to a record. References
// whose name cannot be resolved are dropped. The order of the result is not
// meaningful.
func (rs *RecentFilesService) Load(ctx context.Context) (models.RecentFilesList, error) {
	refs, err := rs.store.Strings(ctx, rs.key)
	if err != nil {
		return nil, fmt.Errorf("load recent files: %w", err)
	}

	list := make(models.RecentFilesList, 0, len(refs))
	dropped := 0
	for _, ref := range refs {
		name, err := rs.resolver.DisplayName(ref)
		if err != nil {
			dropped++
			rs.logger.Debug(recentComponent, "dropping unresolvable entry", map[string]interface{}{
				"reference": ref,
				"error":     err.Error(),
			})
			continue
		}
		list = models.Append(list, models.FileRecord{DisplayName: name, Reference: ref})
	}

	rs.logger.Info(recentComponent, "recent files loaded", map[string]interface{}{
		"stored":  len(refs),
		"loaded":  len(list),
		"dropped": dropped,
	})
	return list, nil
}

// Save overwrites the stored set with the references in list
func (rs *RecentFilesService) Save(ctx context.Context, list models.RecentFilesList) error {
	if err := rs.store.SetStrings(ctx, rs.key, list.References()); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrPersistenceFailure, err)
	}
	return nil
}

// Restore loads the stored list into the repository
func (rs *RecentFilesService) Restore(ctx context.Context) (models.RecentFilesList, error) {
	list, err := rs.Load(ctx)
	if err != nil {
		return nil, err
	}
	rs.repository.Replace(list)
	return list, nil
}

// Remember adds record to the repository and saves when the list changed.
// A failed save leaves the record in memory.
func (rs *RecentFilesService) Remember(ctx context.Context, record models.FileRecord) (bool, error) {
	if !rs.repository.Add(record) {
		return false, nil
	}
	if err := rs.Save(ctx, rs.repository.List()); err != nil {
		return true, err
	}
	rs.logger.Debug(recentComponent, "recent files saved", map[string]interface{}{
		"count": rs.repository.Len(),
	})
	return true, nil
}

// List returns the current in-memory list
func (rs *RecentFilesService) List() models.RecentFilesList {
	return rs.repository.List()
}
