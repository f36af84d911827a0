package repository

import (
	"context"
	"errors"
	"strings"

	"clothesmanager/internal/domain/model"
	repo "clothesmanager/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MaterialGormRepository struct {
	db *gorm.DB
}

// DI
func NewMaterialGormRepository(db *gorm.DB) *MaterialGormRepository {
	return &MaterialGormRepository{db: db}
}

func (r *MaterialGormRepository) FindByID(ctx context.Context, id int64) (model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).
		Preload("Size").Preload("Store").
		First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Material{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Material{}, err
	}
	return m, nil
}

// SELECT ... FOR UPDATE で行ロックを取る。
// 同じmaterialへの同時予約はここで直列化される。
func (r *MaterialGormRepository) FindByIDForUpdate(ctx context.Context, id int64) (model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Material{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Material{}, err
	}
	return m, nil
}

func (r *MaterialGormRepository) FindByStoreID(ctx context.Context, storeID int64) ([]model.Material, error) {
	var items []model.Material
	err := r.db.WithContext(ctx).
		Preload("Size").Preload("Store").
		Where("store_id = ?", storeID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Material{}, err
	}
	return items, nil
}

func (r *MaterialGormRepository) List(ctx context.Context, f repo.MaterialListFilter) ([]model.Material, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).Model(&model.Material{})

	if f.StoreID != nil {
		q = q.Where("store_id = ?", *f.StoreID)
	}
	if strings.TrimSpace(f.Text) != "" {
		q = q.Where("text ILIKE ?", "%"+strings.TrimSpace(f.Text)+"%")
	}
	if f.SizeID != nil {
		q = q.Where("size_id = ?", *f.SizeID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Material{}, 0, err
	}

	var items []model.Material
	offset := (f.Page - 1) * f.Limit
	err := q.Preload("Size").Preload("Store").
		Order("id asc").
		Limit(f.Limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Material{}, 0, err
	}

	return items, total, nil
}

func (r *MaterialGormRepository) ExistsByTextSizeStore(ctx context.Context, text string, sizeID int64, storeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Material{}).
		Where("text = ? AND size_id = ? AND store_id = ?", text, sizeID, storeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// 編集時は自分自身を除外して重複チェック
func (r *MaterialGormRepository) ExistsByTextSizeStoreExcluding(ctx context.Context, text string, sizeID int64, storeID int64, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Material{}).
		Where("text = ? AND size_id = ? AND store_id = ? AND id <> ?", text, sizeID, storeID, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MaterialGormRepository) FindByTextSizeStore(ctx context.Context, text string, sizeID int64, storeID int64) (model.Material, bool, error) {
	var m model.Material
	err := r.db.WithContext(ctx).
		Where("text = ? AND size_id = ? AND store_id = ?", text, sizeID, storeID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Material{}, false, nil
	}
	if err != nil {
		return model.Material{}, false, err
	}
	return m, true, nil
}

func (r *MaterialGormRepository) FindAllByFilter(ctx context.Context, f repo.MaterialFilter) ([]model.Material, error) {
	q := r.db.WithContext(ctx).Model(&model.Material{})

	if f.StoreID != nil {
		q = q.Where("store_id = ?", *f.StoreID)
	}
	if strings.TrimSpace(f.Text) != "" {
		q = q.Where("text ILIKE ?", "%"+strings.TrimSpace(f.Text)+"%")
	}
	if f.SizeID != nil {
		q = q.Where("size_id = ?", *f.SizeID)
	}

	var items []model.Material
	err := q.Preload("Size").Preload("Store").
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Material{}, err
	}
	return items, nil
}

func (r *MaterialGormRepository) ExistsByStoreID(ctx context.Context, storeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Material{}).
		Where("store_id = ?", storeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MaterialGormRepository) Count(ctx context.Context, storeID *int64) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Material{})
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *MaterialGormRepository) Create(ctx context.Context, m model.Material) (model.Material, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.Material{}, err
	}
	return m, nil
}

func (r *MaterialGormRepository) Update(ctx context.Context, m model.Material) error {
	res := r.db.WithContext(ctx).Model(&model.Material{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"text":     m.Text,
			"quantity": m.Quantity,
			"size_id":  m.SizeID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *MaterialGormRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	res := r.db.WithContext(ctx).Model(&model.Material{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 物理削除（soft-deleteなし）
func (r *MaterialGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Material{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
