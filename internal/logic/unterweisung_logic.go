package logic

import (
	"context"
	"errors"

	"github.com/PetA199003/GBU-Management/common/errorx"
	"github.com/PetA199003/GBU-Management/common/utils"
	"github.com/PetA199003/GBU-Management/internal/audit"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/svc"
	"github.com/PetA199003/GBU-Management/internal/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgUnterweisungNotFound = "Unterweisung nicht gefunden"

// UnterweisungLogic 安全交底逻辑
type UnterweisungLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// NewUnterweisungLogic 创建安全交底逻辑
func NewUnterweisungLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UnterweisungLogic {
	return &UnterweisungLogic{ctx: ctx, svcCtx: svcCtx}
}

func (l *UnterweisungLogic) db() *gorm.DB {
	return l.svcCtx.DB.WithContext(l.ctx)
}

// orderedItems 条目按段落和排序号排列
func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("section").Order("sort_order").Order("id")
}

// ListByProject 项目的安全交底
func (l *UnterweisungLogic) ListByProject(user *model.User, projectID uint) ([]model.Unterweisung, error) {
	if _, err := accessibleProject(l.db(), user, projectID); err != nil {
		return nil, err
	}
	list := make([]model.Unterweisung, 0)
	err := l.db().Preload("Items", orderedItems).
		Where("project_id = ?", projectID).Order("id DESC").Find(&list).Error
	return list, err
}

// Get 安全交底详情
func (l *UnterweisungLogic) Get(user *model.User, id uint) (*model.Unterweisung, error) {
	u, err := loadUnterweisung(l.db(), id)
	if err != nil {
		return nil, err
	}
	if _, err := accessibleProject(l.db(), user, u.ProjectID); err != nil {
		return nil, err
	}
	return u, nil
}

func loadUnterweisung(db *gorm.DB, id uint) (*model.Unterweisung, error) {
	var u model.Unterweisung
	err := db.Preload("Items", orderedItems).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.NotFound(msgUnterweisungNotFound)
	}
	if err != nil {
		return nil, err
	}
	if u.Items == nil {
		u.Items = make([]model.UnterweisungItem, 0)
	}
	return &u, nil
}

// Create 创建安全交底
func (l *UnterweisungLogic) Create(user *model.User, req *types.UnterweisungRequest) (*model.Unterweisung, error) {
	if req.ProjectID == 0 {
		return nil, errorx.BadRequest("Projekt-ID erforderlich")
	}
	if _, err := accessibleProject(l.db(), user, req.ProjectID); err != nil {
		return nil, err
	}
	u := &model.Unterweisung{ProjectID: req.ProjectID, CreatedBy: user.ID}
	applyUnterweisung(u, req)
	if utils.IsBlank(u.Title) {
		return nil, errorx.BadRequest("Titel erforderlich")
	}
	if err := l.save(u, req.Items, true); err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionCreate, audit.EntityUnterweisung, u.ID, u.Title)
	return loadUnterweisung(l.db(), u.ID)
}

// Update 更新安全交底，提供 items 时替换全部条目
func (l *UnterweisungLogic) Update(user *model.User, id uint, req *types.UnterweisungRequest) (*model.Unterweisung, error) {
	u, err := l.Get(user, id)
	if err != nil {
		return nil, err
	}
	applyUnterweisung(u, req)
	if utils.IsBlank(u.Title) {
		return nil, errorx.BadRequest("Titel erforderlich")
	}
	if err := l.save(u, req.Items, false); err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionUpdate, audit.EntityUnterweisung, u.ID, u.Title)
	return loadUnterweisung(l.db(), u.ID)
}

// Delete 删除安全交底及其条目
func (l *UnterweisungLogic) Delete(user *model.User, id uint) error {
	u, err := l.Get(user, id)
	if err != nil {
		return err
	}
	err = l.db().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("unterweisung_id = ?", id).Delete(&model.UnterweisungItem{}).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Delete(u).Error
	})
	if err != nil {
		return err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionDelete, audit.EntityUnterweisung, id, u.Title)
	return nil
}

// Generate 按项目生成默认安全交底
func (l *UnterweisungLogic) Generate(user *model.User, projectID uint) (*model.Unterweisung, error) {
	project, err := accessibleProject(l.db(), user, projectID)
	if err != nil {
		return nil, err
	}
	u := &model.Unterweisung{
		ProjectID:          projectID,
		Title:              defaultUnterweisungTitle,
		Veranstaltung:      project.Name,
		DatumOrt:           project.StartDate.German() + " / " + project.Location,
		Organisation:       defaultOrganisation,
		AllgemeineHinweise: defaultAllgemeineHinweise,
		NotfaelleRaeumung:  defaultNotfaelleRaeumung,
		CreatedBy:          user.ID,
		Items:              defaultUnterweisungItems(),
	}
	if err := l.db().Create(u).Error; err != nil {
		return nil, err
	}
	l.svcCtx.Audit.Log(l.ctx, user.ID, audit.ActionGenerate, audit.EntityUnterweisung, u.ID, project.Name)
	return loadUnterweisung(l.db(), u.ID)
}

// save 保存交底，items 非 nil 时替换条目
func (l *UnterweisungLogic) save(u *model.Unterweisung, items *[]types.UnterweisungItemRequest, create bool) error {
	return l.db().Transaction(func(tx *gorm.DB) error {
		var err error
		if create {
			err = tx.Omit(clause.Associations).Create(u).Error
		} else {
			err = tx.Omit(clause.Associations).Save(u).Error
		}
		if err != nil || items == nil {
			return err
		}
		if err := tx.Where("unterweisung_id = ?", u.ID).Delete(&model.UnterweisungItem{}).Error; err != nil {
			return err
		}
		if len(*items) == 0 {
			return nil
		}
		rows := utils.SliceMap(*items, func(i int, it types.UnterweisungItemRequest) model.UnterweisungItem {
			order := it.SortOrder
			if order == 0 {
				order = i + 1
			}
			return model.UnterweisungItem{
				UnterweisungID: u.ID,
				Section:        it.Section,
				IconType:       it.IconType,
				Content:        it.Content,
				SortOrder:      order,
			}
		})
		return tx.Create(&rows).Error
	})
}

func applyUnterweisung(u *model.Unterweisung, req *types.UnterweisungRequest) {
	fields := []struct {
		dst *string
		src *string
	}{
		{&u.Title, req.Title},
		{&u.Content, req.Content},
		{&u.Veranstaltung, req.Veranstaltung},
		{&u.DatumOrt, req.DatumOrt},
		{&u.Organisation, req.Organisation},
		{&u.AllgemeineHinweise, req.AllgemeineHinweise},
		{&u.NotfaelleRaeumung, req.NotfaelleRaeumung},
		{&u.ZusaetzlicheRegeln, req.ZusaetzlicheRegeln},
	}
	for _, f := range fields {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
}
