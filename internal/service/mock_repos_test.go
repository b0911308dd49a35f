package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"classroom-attendance/internal/model"
	"classroom-attendance/internal/repository"
)

// mockStore 内存数据源，三个 mock 仓储共享同一份数据
type mockStore struct {
	classes     map[uint]*model.Class
	students    map[string]*model.Student // key: classID|unique_number
	attendances map[string]*model.Attendance
	nextID      uint

	// upsertFailAt 第 N 次学生 upsert 返回错误（0 表示不失败）
	upsertFailAt int
	upsertCalls  int
	classErr     error
}

var errMockStore = errors.New("mock store failure")

func newMockStore() *mockStore {
	return &mockStore{
		classes:     make(map[uint]*model.Class),
		students:    make(map[string]*model.Student),
		attendances: make(map[string]*model.Attendance),
	}
}

func (m *mockStore) id() uint {
	m.nextID++
	return m.nextID
}

func studentKey(classID uint, number string) string {
	return fmt.Sprintf("%d|%s", classID, number)
}

func attendanceKey(studentID uint, date string) string {
	return fmt.Sprintf("%d|%s", studentID, date)
}

func (m *mockStore) addClass(name string) *model.Class {
	c := &model.Class{ID: m.id(), Name: name}
	m.classes[c.ID] = c
	return c
}

func (m *mockStore) addStudent(classID uint, number, name string) *model.Student {
	s := &model.Student{ID: m.id(), ClassID: classID, UniqueNumber: number, Name: name}
	m.students[studentKey(classID, number)] = s
	return s
}

func (m *mockStore) countStudents(classID uint) int {
	n := 0
	for _, s := range m.students {
		if s.ClassID == classID {
			n++
		}
	}
	return n
}

func (m *mockStore) repository() *repository.Repository {
	return &repository.Repository{
		Class:      &mockClassRepo{store: m},
		Student:    &mockStudentRepo{store: m},
		Attendance: &mockAttendanceRepo{store: m},
		Tx:         &mockTransactor{store: m},
	}
}

// ── Mock Transactor ──

// mockTransactor 以快照方式模拟事务：fn 返回错误时恢复快照
type mockTransactor struct {
	store *mockStore
}

func (t *mockTransactor) Transaction(_ context.Context, fn func(txRepo *repository.Repository) error) error {
	students := make(map[string]*model.Student, len(t.store.students))
	for k, v := range t.store.students {
		cp := *v
		students[k] = &cp
	}
	attendances := make(map[string]*model.Attendance, len(t.store.attendances))
	for k, v := range t.store.attendances {
		cp := *v
		attendances[k] = &cp
	}

	if err := fn(t.store.repository()); err != nil {
		t.store.students = students
		t.store.attendances = attendances
		return err
	}
	return nil
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	store *mockStore
}

func (r *mockClassRepo) Create(_ context.Context, class *model.Class) error {
	if r.store.classErr != nil {
		return r.store.classErr
	}
	class.ID = r.store.id()
	r.store.classes[class.ID] = class
	return nil
}

func (r *mockClassRepo) GetByID(_ context.Context, id uint) (*model.Class, error) {
	if r.store.classErr != nil {
		return nil, r.store.classErr
	}
	if c, ok := r.store.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	store *mockStore
}

func (r *mockStudentRepo) Upsert(_ context.Context, student *model.Student) error {
	r.store.upsertCalls++
	if r.store.upsertFailAt > 0 && r.store.upsertCalls == r.store.upsertFailAt {
		return errMockStore
	}

	key := studentKey(student.ClassID, student.UniqueNumber)
	if existing, ok := r.store.students[key]; ok {
		existing.Name = student.Name
		student.ID = existing.ID
		return nil
	}
	student.ID = r.store.id()
	cp := *student
	r.store.students[key] = &cp
	return nil
}

func (r *mockStudentRepo) GetByNumber(_ context.Context, classID uint, uniqueNumber string) (*model.Student, error) {
	if s, ok := r.store.students[studentKey(classID, uniqueNumber)]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockStudentRepo) CountByClass(_ context.Context, classID uint) (int64, error) {
	return int64(r.store.countStudents(classID)), nil
}

func (r *mockStudentRepo) ListPresent(_ context.Context, classID uint, date string) ([]model.Student, error) {
	return r.filter(classID, date, true), nil
}

func (r *mockStudentRepo) ListAbsent(_ context.Context, classID uint, date string) ([]model.Student, error) {
	return r.filter(classID, date, false), nil
}

func (r *mockStudentRepo) filter(classID uint, date string, present bool) []model.Student {
	var result []model.Student
	for _, s := range r.store.students {
		if s.ClassID != classID {
			continue
		}
		a, ok := r.store.attendances[attendanceKey(s.ID, date)]
		isPresent := ok && a.Status == model.AttendanceStatusPresent
		if isPresent == present {
			result = append(result, *s)
		}
	}
	return result
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	store *mockStore
}

func (r *mockAttendanceRepo) Upsert(_ context.Context, attendance *model.Attendance) error {
	key := attendanceKey(attendance.StudentID, attendance.Date)
	if existing, ok := r.store.attendances[key]; ok {
		existing.Status = attendance.Status
		attendance.ID = existing.ID
		return nil
	}
	attendance.ID = r.store.id()
	cp := *attendance
	r.store.attendances[key] = &cp
	return nil
}

func (r *mockAttendanceRepo) GetByStudentAndDate(_ context.Context, studentID uint, date string) (*model.Attendance, error) {
	if a, ok := r.store.attendances[attendanceKey(studentID, date)]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}
