package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"smartdocs/pkg/types"
)

type modelRow struct {
	UUID                 string `gorm:"primaryKey;size:36"`
	Name                 string `gorm:"uniqueIndex;size:64"`
	DisplayName          string
	Description          string
	LatestRevisionNumber int
	CreatedAt            time.Time
	ModifiedAt           time.Time
}

func (modelRow) TableName() string { return "smartdocs_models" }

type revisionRow struct {
	UUID        string `gorm:"primaryKey;size:36"`
	ModelUUID   string `gorm:"index;size:36"`
	Number      int
	BaseURL     string
	Description string
	CreatedAt   time.Time
	ModifiedAt  time.Time
}

func (revisionRow) TableName() string { return "smartdocs_revisions" }

type resourceRow struct {
	UUID         string `gorm:"primaryKey;size:36"`
	RevisionUUID string `gorm:"index;size:36"`
	Name         string
	DisplayName  string
	Path         string
	Description  string
}

func (resourceRow) TableName() string { return "smartdocs_resources" }

type methodRow struct {
	UUID            string `gorm:"primaryKey;size:36"`
	ResourceUUID    string `gorm:"index;size:36"`
	Name            string
	DisplayName     string
	Verb            string `gorm:"size:8"`
	Description     string
	Body            string
	BodyContentType string
}

func (methodRow) TableName() string { return "smartdocs_methods" }

type nodeRow struct {
	NID          int64  `gorm:"primaryKey;autoIncrement"`
	MethodUUID   string `gorm:"uniqueIndex;size:36"`
	ResourceUUID string `gorm:"index;size:36"`
	RevisionUUID string `gorm:"index;size:36"`
	ModelUUID    string `gorm:"index;size:36"`
	Title        string
	Published    bool
	ModifiedAt   time.Time
}

func (nodeRow) TableName() string { return "smartdocs_nodes" }

type templateRow struct {
	ModelUUID string `gorm:"primaryKey;size:36"`
	Content   string
}

func (templateRow) TableName() string { return "smartdocs_templates" }

type authSchemeRow struct {
	ModelUUID    string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"primaryKey;size:128"`
	Type         string
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

func (authSchemeRow) TableName() string { return "smartdocs_template_auth_schemes" }

type securityRow struct {
	RevisionUUID     string `gorm:"primaryKey;size:36"`
	Name             string `gorm:"primaryKey;size:128"`
	Type             string
	In               string
	ParamName        string
	AuthorizationURL string
	AccessTokenURL   string
	Scopes           []string `gorm:"serializer:json"`
}

func (securityRow) TableName() string { return "smartdocs_security_schemes" }

// NewDialector maps a driver name to a gorm dialector.
func NewDialector(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "postgresql":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite", "sqlite3":
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unknown gorm driver %q", driver)
	}
}

// GormStore persists entities through gorm.
type GormStore struct {
	db *gorm.DB
}

// OpenGorm opens the database and migrates the smartdocs tables.
func OpenGorm(driver, dsn string) (*GormStore, error) {
	d, err := NewDialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return NewGormStore(db)
}

// NewGormStore wraps an existing connection and migrates the schema.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(
		&modelRow{}, &revisionRow{}, &resourceRow{}, &methodRow{},
		&nodeRow{}, &templateRow{}, &authSchemeRow{}, &securityRow{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

func wrapNotFound(err error, kind, key string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(kind, key)
	}
	return err
}

func (s *GormStore) GetModel(ctx context.Context, key string) (types.Model, error) {
	var row modelRow
	err := s.db.WithContext(ctx).Where("uuid = ? OR name = ?", key, key).First(&row).Error
	if err != nil {
		return types.Model{}, wrapNotFound(err, "model", key)
	}
	return row.toModel(), nil
}

func (s *GormStore) ListModels(ctx context.Context) ([]types.Model, error) {
	var rows []modelRow
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]types.Model, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

func (s *GormStore) PutModel(ctx context.Context, m types.Model) error {
	row := modelRow{
		UUID: m.UUID, Name: m.Name, DisplayName: m.DisplayName, Description: m.Description,
		LatestRevisionNumber: m.LatestRevisionNumber, CreatedAt: m.CreatedAt, ModifiedAt: m.ModifiedAt,
	}
	return s.db.WithContext(ctx).Save(&row).Error
}

func (s *GormStore) DeleteModel(ctx context.Context, uuid string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("uuid = ?", uuid).Delete(&modelRow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("model", uuid)
		}
		revs := tx.Model(&revisionRow{}).Select("uuid").Where("model_uuid = ?", uuid)
		ress := tx.Model(&resourceRow{}).Select("uuid").Where("revision_uuid IN (?)", revs)
		steps := []*gorm.DB{
			tx.Where("model_uuid = ?", uuid).Delete(&nodeRow{}),
			tx.Where("resource_uuid IN (?)", ress).Delete(&methodRow{}),
			tx.Where("revision_uuid IN (?)", revs).Delete(&resourceRow{}),
			tx.Where("revision_uuid IN (?)", revs).Delete(&securityRow{}),
			tx.Where("model_uuid = ?", uuid).Delete(&revisionRow{}),
			tx.Where("model_uuid = ?", uuid).Delete(&templateRow{}),
			tx.Where("model_uuid = ?", uuid).Delete(&authSchemeRow{}),
		}
		for _, st := range steps {
			if st.Error != nil {
				return st.Error
			}
		}
		return nil
	})
}

func (s *GormStore) GetRevision(ctx context.Context, uuid string) (types.Revision, error) {
	var row revisionRow
	if err := s.db.WithContext(ctx).Where("uuid = ?", uuid).First(&row).Error; err != nil {
		return types.Revision{}, wrapNotFound(err, "revision", uuid)
	}
	return row.toRevision(), nil
}

func (s *GormStore) ListRevisions(ctx context.Context, modelUUID string) ([]types.Revision, error) {
	var rows []revisionRow
	if err := s.db.WithContext(ctx).Where("model_uuid = ?", modelUUID).Order("number").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]types.Revision, len(rows))
	for i, r := range rows {
		out[i] = r.toRevision()
	}
	return out, nil
}

func (s *GormStore) PutRevision(ctx context.Context, r types.Revision) error {
	row := revisionRow{
		UUID: r.UUID, ModelUUID: r.ModelUUID, Number: r.Number, BaseURL: r.BaseURL,
		Description: r.Description, CreatedAt: r.CreatedAt, ModifiedAt: r.ModifiedAt,
	}
	return s.db.WithContext(ctx).Save(&row).Error
}

func (s *GormStore) GetResource(ctx context.Context, uuid string) (types.Resource, error) {
	var row resourceRow
	if err := s.db.WithContext(ctx).Where("uuid = ?", uuid).First(&row).Error; err != nil {
		return types.Resource{}, wrapNotFound(err, "resource", uuid)
	}
	return types.Resource(row), nil
}

func (s *GormStore) ListResources(ctx context.Context, revisionUUID string) ([]types.Resource, error) {
	var rows []resourceRow
	if err := s.db.WithContext(ctx).Where("revision_uuid = ?", revisionUUID).Order("path").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]types.Resource, len(rows))
	for i, r := range rows {
		out[i] = types.Resource(r)
	}
	return out, nil
}

func (s *GormStore) PutResource(ctx context.Context, r types.Resource) error {
	row := resourceRow(r)
	return s.db.WithContext(ctx).Save(&row).Error
}

func (s *GormStore) DeleteResource(ctx context.Context, uuid string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("uuid = ?", uuid).Delete(&resourceRow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("resource", uuid)
		}
		if err := tx.Where("resource_uuid = ?", uuid).Delete(&nodeRow{}).Error; err != nil {
			return err
		}
		return tx.Where("resource_uuid = ?", uuid).Delete(&methodRow{}).Error
	})
}

func (s *GormStore) GetMethod(ctx context.Context, uuid string) (types.Method, error) {
	var row methodRow
	if err := s.db.WithContext(ctx).Where("uuid = ?", uuid).First(&row).Error; err != nil {
		return types.Method{}, wrapNotFound(err, "method", uuid)
	}
	return types.Method(row), nil
}

func (s *GormStore) ListMethods(ctx context.Context, resourceUUID string) ([]types.Method, error) {
	var rows []methodRow
	if err := s.db.WithContext(ctx).Where("resource_uuid = ?", resourceUUID).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]types.Method, len(rows))
	for i, r := range rows {
		out[i] = types.Method(r)
	}
	return out, nil
}

func (s *GormStore) PutMethod(ctx context.Context, m types.Method) error {
	row := methodRow(m)
	return s.db.WithContext(ctx).Save(&row).Error
}

func (s *GormStore) DeleteMethod(ctx context.Context, uuid string) error {
	res := s.db.WithContext(ctx).Where("uuid = ?", uuid).Delete(&methodRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("method", uuid)
	}
	return nil
}

func (s *GormStore) GetNodeByMethod(ctx context.Context, methodUUID string) (types.MethodNode, error) {
	var row nodeRow
	if err := s.db.WithContext(ctx).Where("method_uuid = ?", methodUUID).First(&row).Error; err != nil {
		return types.MethodNode{}, wrapNotFound(err, "node for method", methodUUID)
	}
	return types.MethodNode(row), nil
}

func (s *GormStore) PutNode(ctx context.Context, n *types.MethodNode) error {
	row := nodeRow(*n)
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return err
	}
	n.NID = row.NID
	return nil
}

func (s *GormStore) DeleteNode(ctx context.Context, nid int64) error {
	res := s.db.WithContext(ctx).Delete(&nodeRow{}, nid)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("node", strconv.FormatInt(nid, 10))
	}
	return nil
}

func (s *GormStore) GetTemplate(ctx context.Context, modelUUID string) (string, error) {
	var row templateRow
	if err := s.db.WithContext(ctx).Where("model_uuid = ?", modelUUID).First(&row).Error; err != nil {
		return "", wrapNotFound(err, "template", modelUUID)
	}
	return row.Content, nil
}

func (s *GormStore) PutTemplate(ctx context.Context, modelUUID, content string) error {
	return s.db.WithContext(ctx).Save(&templateRow{ModelUUID: modelUUID, Content: content}).Error
}

func (s *GormStore) DeleteTemplate(ctx context.Context, modelUUID string) error {
	return s.db.WithContext(ctx).Where("model_uuid = ?", modelUUID).Delete(&templateRow{}).Error
}

func (s *GormStore) GetTemplateAuth(ctx context.Context, modelUUID string) (types.TemplateAuth, error) {
	var rows []authSchemeRow
	if err := s.db.WithContext(ctx).Where("model_uuid = ?", modelUUID).Order("name").Find(&rows).Error; err != nil {
		return types.TemplateAuth{}, err
	}
	ta := types.TemplateAuth{ModelUUID: modelUUID}
	for _, r := range rows {
		ta.Schemes = append(ta.Schemes, types.TemplateAuthScheme{
			Name: r.Name, Type: r.Type, ClientID: r.ClientID, ClientSecret: r.ClientSecret, CallbackURL: r.CallbackURL,
		})
	}
	return ta, nil
}

func (s *GormStore) PutTemplateAuthScheme(ctx context.Context, modelUUID string, sc types.TemplateAuthScheme) error {
	row := authSchemeRow{
		ModelUUID: modelUUID, Name: sc.Name, Type: sc.Type,
		ClientID: sc.ClientID, ClientSecret: sc.ClientSecret, CallbackURL: sc.CallbackURL,
	}
	return s.db.WithContext(ctx).Save(&row).Error
}

func (s *GormStore) DeleteTemplateAuthScheme(ctx context.Context, modelUUID, name string) error {
	res := s.db.WithContext(ctx).Where("model_uuid = ? AND name = ?", modelUUID, name).Delete(&authSchemeRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("template auth scheme", name)
	}
	return nil
}

func (s *GormStore) GetSecurityScheme(ctx context.Context, revisionUUID, name string) (types.SecurityScheme, error) {
	var row securityRow
	if err := s.db.WithContext(ctx).Where("revision_uuid = ? AND name = ?", revisionUUID, name).First(&row).Error; err != nil {
		return types.SecurityScheme{}, wrapNotFound(err, "security scheme", name)
	}
	return row.toScheme(), nil
}

func (s *GormStore) ListSecuritySchemes(ctx context.Context, revisionUUID string) ([]types.SecurityScheme, error) {
	var rows []securityRow
	if err := s.db.WithContext(ctx).Where("revision_uuid = ?", revisionUUID).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]types.SecurityScheme, len(rows))
	for i, r := range rows {
		out[i] = r.toScheme()
	}
	return out, nil
}

func (s *GormStore) PutSecurityScheme(ctx context.Context, sc types.SecurityScheme) error {
	row := securityRow{
		RevisionUUID: sc.RevisionUUID, Name: sc.Name, Type: sc.Type, In: sc.In, ParamName: sc.ParamName,
		AuthorizationURL: sc.AuthorizationURL, AccessTokenURL: sc.AccessTokenURL, Scopes: sc.Scopes,
	}
	return s.db.WithContext(ctx).Save(&row).Error
}

func (s *GormStore) DeleteSecurityScheme(ctx context.Context, revisionUUID, name string) error {
	res := s.db.WithContext(ctx).Where("revision_uuid = ? AND name = ?", revisionUUID, name).Delete(&securityRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("security scheme", name)
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r modelRow) toModel() types.Model {
	return types.Model{
		UUID: r.UUID, Name: r.Name, DisplayName: r.DisplayName, Description: r.Description,
		LatestRevisionNumber: r.LatestRevisionNumber, CreatedAt: r.CreatedAt, ModifiedAt: r.ModifiedAt,
	}
}

func (r revisionRow) toRevision() types.Revision {
	return types.Revision{
		UUID: r.UUID, ModelUUID: r.ModelUUID, Number: r.Number, BaseURL: r.BaseURL,
		Description: r.Description, CreatedAt: r.CreatedAt, ModifiedAt: r.ModifiedAt,
	}
}

func (r securityRow) toScheme() types.SecurityScheme {
	return types.SecurityScheme{
		Name: r.Name, RevisionUUID: r.RevisionUUID, Type: r.Type, In: r.In, ParamName: r.ParamName,
		AuthorizationURL: r.AuthorizationURL, AccessTokenURL: r.AccessTokenURL, Scopes: r.Scopes,
	}
}
