package claims

import (
	"context"
	"database/sql"
	"time"

	"claimsync-service/internal/app/contracts"
	"claimsync-service/internal/app/models"
	"claimsync-service/internal/pkg/exceptions"
	"claimsync-service/internal/pkg/queries"

	"github.com/google/uuid"
)

type responseFilePostgresRepository struct {
	DB *sql.DB
}

func NewResponseFilePostgresRepository(db *sql.DB) contracts.ResponseFileRepository {
	return &responseFilePostgresRepository{
		DB: db,
	}
}

func (repo *responseFilePostgresRepository) ListKnownResponseFilenames(ctx context.Context) (map[string]struct{}, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetAllResponseFilenames)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	known := make(map[string]struct{})
	for rows.Next() {
		var fileName string
		if err := rows.Scan(&fileName); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		known[fileName] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return known, nil
}

func (repo *responseFilePostgresRepository) ListPendingResponseFiles(ctx context.Context) ([]models.ResponseFile, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetPendingResponseFiles)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	pending := make([]models.ResponseFile, 0)
	for rows.Next() {
		var (
			file             models.ResponseFile
			fileType         string
			processingStatus string
		)
		if err := rows.Scan(
			&file.ID,
			&file.FileName,
			&fileType,
			&file.Content,
			&processingStatus,
			&file.ClaimsUpdated,
			&file.ErrorMessage,
			&file.DownloadedAt,
		); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		file.FileType = models.ResponseFileType(fileType)
		file.ProcessingStatus = models.ProcessingStatus(processingStatus)
		pending = append(pending, file)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return pending, nil
}

func (repo *responseFilePostgresRepository) SaveResponseFile(ctx context.Context, file *models.ResponseFile) error {
	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	if file.ProcessingStatus == "" {
		file.ProcessingStatus = models.ProcessingStatusPending
	}
	if file.DownloadedAt.IsZero() {
		file.DownloadedAt = time.Now().UTC()
	}

	_, err := repo.DB.ExecContext(ctx, queries.InsertResponseFile,
		file.ID,
		file.FileName,
		string(file.FileType),
		file.Content,
		string(file.ProcessingStatus),
		file.ClaimsUpdated,
		file.ErrorMessage,
		file.DownloadedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *responseFilePostgresRepository) UpdateResponseFileProcessingResult(ctx context.Context, fileName string, status models.ProcessingStatus, claimsUpdated int, errorMessage string) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpdateResponseFileProcessingResult,
		fileName,
		string(status),
		claimsUpdated,
		errorMessage,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}
