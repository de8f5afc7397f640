// Package seed 写入默认数据，可重复执行
package seed

import (
	"context"

	"github.com/PetA199003/GBU-Management/common/logger"
	"github.com/PetA199003/GBU-Management/internal/auth"
	"github.com/PetA199003/GBU-Management/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Result 本次新建的记录数
type Result struct {
	Users       int `json:"users"`
	Bereiche    int `json:"bereiche"`
	Hazards     int `json:"hazards"`
	Measures    int `json:"measures"`
	Criteria    int `json:"criteria"`
	Assessments int `json:"assessments"`
}

// Total 新建总数
func (r *Result) Total() int {
	return r.Users + r.Bereiche + r.Hazards + r.Measures + r.Criteria + r.Assessments
}

// IsEmpty 数据库中还没有用户
func IsEmpty(ctx context.Context, db *gorm.DB) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// Run 写入缺失的默认数据，已存在的记录按自然键跳过
func Run(ctx context.Context, db *gorm.DB) (*Result, error) {
	res := &Result{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []func(*gorm.DB, *Result) error{
			seedUsers, seedBereiche, seedHazards, seedMeasures, seedCriteria, seedAssessments,
		}
		for _, step := range steps {
			if err := step(tx, res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("默认数据写入完成",
		zap.Int("users", res.Users),
		zap.Int("bereiche", res.Bereiche),
		zap.Int("hazards", res.Hazards),
		zap.Int("measures", res.Measures),
		zap.Int("criteria", res.Criteria),
		zap.Int("assessments", res.Assessments),
	)
	return res, nil
}

// exists 按条件判断记录是否存在
func exists[T any](tx *gorm.DB, query any, args ...any) (bool, error) {
	var count int64
	err := tx.Model(new(T)).Where(query, args...).Count(&count).Error
	return count > 0, err
}

// createMissing 不存在时创建，返回是否新建
func createMissing[T any](tx *gorm.DB, row *T, query any, args ...any) (bool, error) {
	found, err := exists[T](tx, query, args...)
	if err != nil || found {
		return false, err
	}
	return true, tx.Create(row).Error
}

func seedUsers(tx *gorm.DB, res *Result) error {
	for _, u := range defaultUsers {
		found, err := exists[model.User](tx, "username = ? OR email = ?", u.Username, u.Email)
		if err != nil {
			return err
		}
		if found {
			continue
		}
		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			return err
		}
		if err := tx.Create(&model.User{
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: hash,
			Role:         u.Role,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			Active:       true,
		}).Error; err != nil {
			return err
		}
		res.Users++
	}
	return nil
}

func seedBereiche(tx *gorm.DB, res *Result) error {
	for i, name := range defaultBereiche {
		created, err := createMissing(tx, &model.Bereich{Name: name, SortOrder: i + 1}, "name = ?", name)
		if err != nil {
			return err
		}
		if created {
			res.Bereiche++
		}
	}
	return nil
}

func seedHazards(tx *gorm.DB, res *Result) error {
	for _, h := range defaultHazards {
		row := h
		created, err := createMissing(tx, &row, "name = ?", h.Name)
		if err != nil {
			return err
		}
		if created {
			res.Hazards++
		}
	}
	return nil
}

func seedMeasures(tx *gorm.DB, res *Result) error {
	for _, m := range defaultMeasures {
		row := m
		created, err := createMissing(tx, &row, "name = ? AND hazard_category = ?", m.Name, m.HazardCategory)
		if err != nil {
			return err
		}
		if created {
			res.Measures++
		}
	}
	return nil
}

func seedCriteria(tx *gorm.DB, res *Result) error {
	for _, c := range defaultCriteria {
		row := c
		created, err := createMissing(tx, &row, &model.CriteriaCategory{Key: c.Key})
		if err != nil {
			return err
		}
		if created {
			res.Criteria++
		}
	}
	return nil
}

func seedAssessments(tx *gorm.DB, res *Result) error {
	for _, ra := range defaultAssessments {
		row := ra
		if err := row.ApplyRisk(); err != nil {
			return err
		}
		created, err := createMissing(tx, &row, "activity = ? AND group_name = ?", ra.Activity, ra.Group)
		if err != nil {
			return err
		}
		if created {
			res.Assessments++
		}
	}
	return nil
}
