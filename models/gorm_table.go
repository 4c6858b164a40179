package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// documentRow is the physical layout shared by every collection:
// the primary key next to the JSON encoded item.
type documentRow struct {
	PK        string         `gorm:"column:pk;primaryKey"`
	Document  datatypes.JSON `gorm:"column:document;not null"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

// GormTable stores one collection in a SQL table through gorm.
type GormTable[T any] struct {
	db   *gorm.DB
	name string
}

func NewGormTable[T any](db *gorm.DB, name string) *GormTable[T] {
	return &GormTable[T]{
		db:   db,
		name: name,
	}
}

// NewGormTables binds the service collections to db.
func NewGormTables(db *gorm.DB) Tables {
	return Tables{
		Products:      NewGormTable[Product](db, ProductsTable),
		InboundNotes:  NewGormTable[Note](db, InboundNotesTable),
		OutboundNotes: NewGormTable[Note](db, OutboundNotesTable),
	}
}

// AutoMigrateTables creates the collection tables when they are missing.
// Postgres deployments use the SQL files applied by the migrate command instead.
func AutoMigrateTables(db *gorm.DB) error {
	for _, name := range []string{ProductsTable, InboundNotesTable, OutboundNotesTable} {
		if err := db.Table(name).AutoMigrate(&documentRow{}); err != nil {
			return fmt.Errorf("migrating table %s: %w", name, err)
		}
	}
	return nil
}

func (t *GormTable[T]) query(ctx context.Context) *gorm.DB {
	return t.db.WithContext(ctx).Table(t.name)
}

func (t *GormTable[T]) Get(ctx context.Context, key string) (*T, error) {
	var row documentRow
	if err := t.query(ctx).Where("pk = ?", key).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return decodeDocument[T](row)
}

func (t *GormTable[T]) Put(ctx context.Context, key string, item T) error {
	row, err := newDocumentRow(key, item)
	if err != nil {
		return err
	}
	return t.query(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pk"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
		}).
		Create(&row).Error
}

func (t *GormTable[T]) PutIfAbsent(ctx context.Context, key string, item T) error {
	row, err := newDocumentRow(key, item)
	if err != nil {
		return err
	}
	res := t.query(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConditionFailed
	}
	return nil
}

func (t *GormTable[T]) Update(ctx context.Context, key string, fn func(item *T) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row documentRow
		// SELECT ... FOR UPDATE serialises concurrent read-modify-writes on
		// postgres. sqlite drops the clause and locks the whole database.
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Table(t.name).
			Where("pk = ?", key).
			Take(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}
		item, err := decodeDocument[T](row)
		if err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}
		doc, err := json.Marshal(item)
		if err != nil {
			return err
		}
		return tx.Table(t.name).Where("pk = ?", key).Updates(map[string]any{
			"document":   datatypes.JSON(doc),
			"updated_at": time.Now().UTC(),
		}).Error
	})
}

func (t *GormTable[T]) Delete(ctx context.Context, key string) error {
	return t.query(ctx).Where("pk = ?", key).Delete(&documentRow{}).Error
}

// Scan reads the whole table in whatever order the database returns.
func (t *GormTable[T]) Scan(ctx context.Context) ([]T, error) {
	var rows []documentRow
	if err := t.query(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]T, 0, len(rows))
	for _, row := range rows {
		item, err := decodeDocument[T](row)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

func newDocumentRow[T any](key string, item T) (documentRow, error) {
	doc, err := json.Marshal(item)
	if err != nil {
		return documentRow{}, err
	}
	now := time.Now().UTC()
	return documentRow{
		PK:        key,
		Document:  datatypes.JSON(doc),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func decodeDocument[T any](row documentRow) (*T, error) {
	var item T
	if err := json.Unmarshal(row.Document, &item); err != nil {
		return nil, fmt.Errorf("decoding document %q: %w", row.PK, err)
	}
	return &item, nil
}
