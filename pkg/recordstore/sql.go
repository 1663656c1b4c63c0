package recordstore

import (
	"context"
	"errors"
	"time"

	"github.com/northbeam-studio/studio-admin/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const collectionsTable = "record_collections"

type collectionRow struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Payload   string    `gorm:"column:payload"`
	Version   int64     `gorm:"column:version"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (collectionRow) TableName() string {
	return collectionsTable
}

// SQLBackend keeps each collection as one row of record_collections.
// The table is created by the embedded goose migrations.
type SQLBackend struct {
	client *db.Client
	now    func() time.Time
}

func NewSQLBackend(client *db.Client) *SQLBackend {
	return &SQLBackend{client: client, now: time.Now}
}

func (b *SQLBackend) Load(ctx context.Context, collection string) ([]byte, error) {
	var row collectionRow
	err := b.client.DB().WithContext(ctx).
		Where("name = ?", collection).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(row.Payload), nil
}

func (b *SQLBackend) Replace(ctx context.Context, collection string, data []byte) error {
	now := b.now().UTC()
	return b.client.WithTx(ctx, func(tx *gorm.DB) error {
		row := collectionRow{
			Name:      collection,
			Payload:   string(data),
			Version:   1,
			UpdatedAt: now,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{
				"payload":    row.Payload,
				"version":    gorm.Expr(collectionsTable + ".version + 1"),
				"updated_at": now,
			}),
		}).Create(&row).Error
	})
}

// Version returns how many times collection has been replaced.
func (b *SQLBackend) Version(ctx context.Context, collection string) (int64, error) {
	var row collectionRow
	err := b.client.DB().WithContext(ctx).
		Select("version").
		Where("name = ?", collection).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return row.Version, err
}

func (b *SQLBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx)
}

// Close is a no-op; the db client is released by the Store.
func (b *SQLBackend) Close() error {
	return nil
}
