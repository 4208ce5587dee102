package repository

import (
	"context"
	"time"

	"bizcard-service/internal/model"
	"bizcard-service/prometheus"

	"gorm.io/gorm"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts u. A taken email surfaces as gorm.ErrDuplicatedKey.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	defer prometheus.TrackDBOperation("user.create")(time.Now())
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*model.User, error) {
	defer prometheus.TrackDBOperation("user.by_id")(time.Now())
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	defer prometheus.TrackDBOperation("user.by_email")(time.Now())
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	defer prometheus.TrackDBOperation("user.list")(time.Now())
	users := make([]model.User, 0)
	if err := r.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// EmailTaken reports whether another user than exceptID holds email.
func (r *UserRepo) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	defer prometheus.TrackDBOperation("user.email_taken")(time.Now())
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error
	return count > 0, err
}

// Update writes cols to the user and returns the stored result.
func (r *UserRepo) Update(ctx context.Context, id string, cols map[string]interface{}) (*model.User, error) {
	defer prometheus.TrackDBOperation("user.update")(time.Now())
	var u model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&u, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) SetBusiness(ctx context.Context, id string, isBusiness bool) (*model.User, error) {
	return r.Update(ctx, id, map[string]interface{}{"is_business": isBusiness})
}

// Delete removes the user and returns the record as it was. Cards the user
// owned are left in place.
func (r *UserRepo) Delete(ctx context.Context, id string) (*model.User, error) {
	defer prometheus.TrackDBOperation("user.delete")(time.Now())
	var u model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.CardLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}
