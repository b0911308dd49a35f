package model

// Class 班级表 — 对应 classes
type Class struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name     string    `gorm:"type:varchar(255);not null" json:"name"`
	Students []Student `gorm:"foreignKey:ClassID"         json:"-"`
	BaseModel
}

// TableName 指定表名
func (Class) TableName() string { return "classes" }
