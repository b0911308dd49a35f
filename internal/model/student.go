package model

// Student 学生表 — 对应 students
// unique_number 仅在班级内唯一
type Student struct {
	ID           uint         `gorm:"primaryKey;autoIncrement"                                            json:"id"`
	UniqueNumber string       `gorm:"type:varchar(100);not null;uniqueIndex:idx_students_number_class,priority:1" json:"unique_number"`
	Name         string       `gorm:"type:varchar(255);not null"                                          json:"name"`
	ClassID      uint         `gorm:"not null;uniqueIndex:idx_students_number_class,priority:2;index"     json:"class_id"`
	Class        *Class       `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE"                      json:"-"`
	Attendances  []Attendance `gorm:"foreignKey:StudentID"                                                json:"-"`
	BaseModel
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
