package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"erisync/backend/internal/model"
)

// HolidayRepository 节假日数据访问接口
type HolidayRepository interface {
	Create(ctx context.Context, holiday *model.Holiday) error
	BatchUpsert(ctx context.Context, holidays []model.Holiday) (int64, error)
	List(ctx context.Context, country string, year int) ([]model.Holiday, error)
	ListByCountriesAndRange(ctx context.Context, countries []string, start, end time.Time) ([]model.Holiday, error)
	Delete(ctx context.Context, id string) error
}

type holidayRepo struct {
	db *gorm.DB
}

func NewHolidayRepo(db *gorm.DB) HolidayRepository {
	return &holidayRepo{db: db}
}

func (r *holidayRepo) Create(ctx context.Context, holiday *model.Holiday) error {
	return r.db.WithContext(ctx).Create(holiday).Error
}

// BatchUpsert 批量写入节假日，(country, holiday_date) 冲突时忽略
// 返回实际插入的行数
func (r *holidayRepo) BatchUpsert(ctx context.Context, holidays []model.Holiday) (int64, error) {
	if len(holidays) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "country"}, {Name: "holiday_date"}},
			DoNothing: true,
		}).
		Create(&holidays)
	return result.RowsAffected, result.Error
}

func (r *holidayRepo) List(ctx context.Context, country string, year int) ([]model.Holiday, error) {
	query := r.db.WithContext(ctx).Model(&model.Holiday{})
	if country != "" {
		query = query.Where("country = ?", country)
	}
	if year > 0 {
		query = query.Where("holiday_date >= ? AND holiday_date < ?",
			time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"))
	}

	var holidays []model.Holiday
	err := query.Order("holiday_date ASC").Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepo) ListByCountriesAndRange(ctx context.Context, countries []string, start, end time.Time) ([]model.Holiday, error) {
	if len(countries) == 0 {
		return nil, nil
	}
	var holidays []model.Holiday
	err := r.db.WithContext(ctx).
		Where("country IN ? AND holiday_date BETWEEN ? AND ?",
			countries, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("holiday_id = ?", id).
		Delete(&model.Holiday{}).Error
}
