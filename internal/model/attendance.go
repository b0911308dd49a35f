package model

// AttendanceStatusPresent 目前唯一会写入的出勤状态
const AttendanceStatusPresent = "Present"

// DateLayout 出勤日期格式（YYYY-MM-DD）
const DateLayout = "2006-01-02"

// Attendance 出勤记录表 — 对应 attendances
// 每个学生每天至多一条记录
type Attendance struct {
	ID        uint     `gorm:"primaryKey;autoIncrement"                                             json:"id"`
	StudentID uint     `gorm:"not null;uniqueIndex:idx_attendances_student_date,priority:1"         json:"student_id"`
	Date      string   `gorm:"type:varchar(10);not null;uniqueIndex:idx_attendances_student_date,priority:2" json:"date"`
	Status    string   `gorm:"type:varchar(20);not null"                                            json:"status"`
	Student   *Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"                     json:"-"`
	BaseModel
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }
