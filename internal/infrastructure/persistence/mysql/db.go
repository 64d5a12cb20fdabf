package mysql

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	zap.L().Info("数据库连接成功",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// NewSQLiteDB 打开SQLite数据库
// 与MySQL共用同一套GORM模型和仓储实现,用于本地开发(storage.driver=sqlite)和单元测试
// 注意：SQLite同一时刻只允许一个写连接,这里把连接池限制为1;
// 内存库(":memory:")每个连接是独立的库,也必须限制为单连接
func NewSQLiteDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("打开SQLite失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	return db, nil
}

// AutoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 唯一索引同样由AutoMigrate创建，购物车的并发正确性依赖这两个唯一索引
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AuthorModel{},
		&BookModel{},
		&BookAuthorModel{},
		&UserModel{},
		&PurchaseModel{},
		&CartModel{},
		&CartItemModel{},
	)
}

// AuthorModel GORM作者模型
type AuthorModel struct {
	ID        string         `gorm:"primaryKey;size:36"`
	FirstName string         `gorm:"size:100;not null;comment:名"`
	LastName  string         `gorm:"size:100;not null;comment:姓"`
	CreatedAt time.Time      `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用decimal(10,2)存储
// 2. 作者引用放在book_authors关联表,查询时手动展开(对应文档库的populate)
// 3. category、price上建索引,覆盖列表页的过滤与排序
type BookModel struct {
	ID        string          `gorm:"primaryKey;size:36"`
	ASIN      string          `gorm:"column:asin;index;size:20;not null;comment:ASIN"`
	Title     string          `gorm:"index;size:200;not null;comment:书名"`
	Img       string          `gorm:"size:500;not null;comment:封面图片URL"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);index;not null;comment:价格"`
	Category  string          `gorm:"index;size:20;not null;comment:分类(history/romance/horror/fantasy)"`
	CreatedAt time.Time       `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time       `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt  `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// BookAuthorModel 图书-作者关联表
// Position保留作者在请求中的顺序
type BookAuthorModel struct {
	BookID   string `gorm:"primaryKey;size:36;comment:图书ID"`
	AuthorID string `gorm:"primaryKey;size:36;index;comment:作者ID"`
	Position int    `gorm:"not null;default:0;comment:作者顺序"`
}

// TableName 指定表名
func (BookAuthorModel) TableName() string {
	return "book_authors"
}

// UserModel GORM用户模型
// 设计说明：
// 1. professions用JSON列存储(datatypes.JSONSlice)
// 2. address内嵌为address_street/address_number两列
// 3. 购买记录拆到purchases子表(一对多),按ID(UUIDv7,时间有序)保持插入顺序
type UserModel struct {
	ID          string                      `gorm:"primaryKey;size:36"`
	FirstName   string                      `gorm:"size:100;not null;comment:名"`
	LastName    string                      `gorm:"size:100;not null;comment:姓"`
	Email       string                      `gorm:"index;size:100;not null;comment:邮箱"`
	DateOfBirth time.Time                   `gorm:"not null;comment:出生日期"`
	Age         int                         `gorm:"not null;comment:年龄(18-65)"`
	Professions datatypes.JSONSlice[string] `gorm:"comment:职业"`
	Address     AddressModel                `gorm:"embedded;embeddedPrefix:address_"`
	Purchases   []PurchaseModel             `gorm:"foreignKey:UserID"`
	CreatedAt   time.Time                   `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time                   `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt              `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// AddressModel 地址(内嵌列)
type AddressModel struct {
	Street string `gorm:"size:200;comment:街道"`
	Number int    `gorm:"comment:门牌号"`
}

// PurchaseModel GORM购买记录模型
// 教学要点:
// 1. 记录购买时的图书快照(title/category/asin/price),不关联books表
// 2. ID独立生成,与来源图书ID无关
type PurchaseModel struct {
	ID           string          `gorm:"primaryKey;size:36"`
	UserID       string          `gorm:"index;size:36;not null;comment:用户ID"`
	Title        string          `gorm:"size:200;comment:书名"`
	Category     string          `gorm:"size:20;comment:分类"`
	ASIN         string          `gorm:"column:asin;size:20;comment:ASIN"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);comment:购买时价格"`
	PurchaseDate time.Time       `gorm:"comment:购买时间"`
	CreatedAt    time.Time       `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (PurchaseModel) TableName() string {
	return "purchases"
}

// CartModel GORM购物车模型
// 教学要点:
//  1. ActiveOwner在Active状态时等于OwnerID,结算后置为NULL
//  2. ActiveOwner上的唯一索引保证"每个用户最多一个Active购物车"
//     (MySQL没有部分索引,利用唯一索引允许多个NULL实现)
type CartModel struct {
	ID          string          `gorm:"primaryKey;size:36"`
	OwnerID     string          `gorm:"index;size:36;not null;comment:用户ID"`
	Status      string          `gorm:"size:10;not null;comment:状态(Active/Paid)"`
	ActiveOwner *string         `gorm:"uniqueIndex:uk_carts_active_owner;size:36;comment:Active时等于owner_id"`
	Items       []CartItemModel `gorm:"foreignKey:CartID"`
	CreatedAt   time.Time       `gorm:"comment:创建时间"`
	UpdatedAt   time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel GORM购物车明细模型
// (cart_id, book_id)唯一,加购时ON CONFLICT累加数量
type CartItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	CartID    string    `gorm:"uniqueIndex:uk_cart_items_cart_book;size:36;not null;comment:购物车ID"`
	BookID    string    `gorm:"uniqueIndex:uk_cart_items_cart_book;size:36;not null;comment:图书ID"`
	Quantity  int       `gorm:"not null;comment:数量"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartItemModel) TableName() string {
	return "cart_items"
}

// =========================================
// ID生成:UUIDv7(时间有序,插入顺序即ID顺序)
// =========================================

func (m *AuthorModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}

func (m *BookModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}

func (m *UserModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}

func (m *PurchaseModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}

func (m *CartModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}
