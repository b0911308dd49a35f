package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"classroom-attendance/internal/model"
)

var fixedNow = time.Date(2026, 3, 9, 10, 30, 0, 0, time.Local)

func setupTestAttendanceService() (AttendanceService, *mockStore) {
	store := newMockStore()
	svc := NewAttendanceService(store.repository(), zap.NewNop())
	svc.(*attendanceService).now = func() time.Time { return fixedNow }
	return svc, store
}

// ── Mark 测试 ──

func TestAttendanceService_Mark_Success(t *testing.T) {
	svc, store := setupTestAttendanceService()
	class := store.addClass("A")
	st := store.addStudent(class.ID, "1001", "Alice")

	resp, err := svc.Mark(context.Background(), class.ID, "1001")
	if err != nil {
		t.Fatalf("Mark 应成功: %v", err)
	}
	if resp.Status != model.AttendanceStatusPresent || resp.UniqueNumber != "1001" {
		t.Errorf("响应不符: %+v", resp)
	}

	a, ok := store.attendances[attendanceKey(st.ID, "2026-03-09")]
	if !ok {
		t.Fatal("期望写入当天出勤记录")
	}
	if a.Status != model.AttendanceStatusPresent {
		t.Errorf("期望状态 Present，实际=%s", a.Status)
	}
}

func TestAttendanceService_Mark_Twice_SingleRecord(t *testing.T) {
	svc, store := setupTestAttendanceService()
	class := store.addClass("A")
	store.addStudent(class.ID, "1001", "Alice")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Mark(ctx, class.ID, "1001"); err != nil {
			t.Fatalf("第 %d 次 Mark 应成功: %v", i+1, err)
		}
	}
	if len(store.attendances) != 1 {
		t.Errorf("同一天重复签到应只有一条记录，实际=%d", len(store.attendances))
	}
}

func TestAttendanceService_Mark_UnknownStudent(t *testing.T) {
	svc, store := setupTestAttendanceService()
	class := store.addClass("A")

	_, err := svc.Mark(context.Background(), class.ID, "9999")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
	if len(store.attendances) != 0 {
		t.Error("未知学号不应写入出勤记录")
	}
}

func TestAttendanceService_Mark_WrongClass(t *testing.T) {
	svc, store := setupTestAttendanceService()
	a := store.addClass("A")
	b := store.addClass("B")
	store.addStudent(a.ID, "1001", "Alice")

	_, err := svc.Mark(context.Background(), b.ID, "1001")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("其他班级的学号应视为不存在，实际: %v", err)
	}
}

// ── ListPresent / ListAbsent 测试 ──

func TestAttendanceService_PresentAndAbsent(t *testing.T) {
	svc, store := setupTestAttendanceService()
	class := store.addClass("A")
	store.addStudent(class.ID, "A1", "Alice")
	store.addStudent(class.ID, "B1", "Bob")
	ctx := context.Background()

	if _, err := svc.Mark(ctx, class.ID, "A1"); err != nil {
		t.Fatalf("Mark 应成功: %v", err)
	}

	present, err := svc.ListPresent(ctx, class.ID, "")
	if err != nil {
		t.Fatalf("ListPresent 应成功: %v", err)
	}
	if present.Date != "2026-03-09" {
		t.Errorf("未传日期时应取当天，实际=%s", present.Date)
	}
	if len(present.PresentStudents) != 1 || present.PresentStudents[0].UniqueNumber != "A1" {
		t.Errorf("期望仅 A1 出勤，实际=%+v", present.PresentStudents)
	}

	absent, err := svc.ListAbsent(ctx, class.ID, "")
	if err != nil {
		t.Fatalf("ListAbsent 应成功: %v", err)
	}
	if len(absent.AbsentStudents) != 1 || absent.AbsentStudents[0].UniqueNumber != "B1" {
		t.Errorf("期望仅 B1 缺勤，实际=%+v", absent.AbsentStudents)
	}
}

func TestAttendanceService_OtherDate_AllAbsent(t *testing.T) {
	svc, store := setupTestAttendanceService()
	class := store.addClass("A")
	store.addStudent(class.ID, "A1", "Alice")
	ctx := context.Background()

	if _, err := svc.Mark(ctx, class.ID, "A1"); err != nil {
		t.Fatalf("Mark 应成功: %v", err)
	}

	present, err := svc.ListPresent(ctx, class.ID, "2026-03-08")
	if err != nil {
		t.Fatalf("ListPresent 应成功: %v", err)
	}
	if len(present.PresentStudents) != 0 {
		t.Errorf("前一天不应有出勤，实际=%+v", present.PresentStudents)
	}
	if present.PresentStudents == nil {
		t.Error("空名单应序列化为 []，不应为 nil")
	}

	absent, err := svc.ListAbsent(ctx, class.ID, "2026-03-08")
	if err != nil {
		t.Fatalf("ListAbsent 应成功: %v", err)
	}
	if len(absent.AbsentStudents) != 1 {
		t.Errorf("无出勤记录的学生应计为缺勤，实际=%+v", absent.AbsentStudents)
	}
}

func TestAttendanceService_List_ClassNotFound(t *testing.T) {
	svc, _ := setupTestAttendanceService()
	ctx := context.Background()

	if _, err := svc.ListPresent(ctx, 42, ""); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("ListPresent 期望 ErrClassNotFound，实际: %v", err)
	}
	if _, err := svc.ListAbsent(ctx, 42, ""); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("ListAbsent 期望 ErrClassNotFound，实际: %v", err)
	}
}

func TestAttendanceService_List_InvalidDate(t *testing.T) {
	svc, store := setupTestAttendanceService()
	class := store.addClass("A")

	for _, d := range []string{"2026-3-9", "09-03-2026", "today", "2026-02-30"} {
		if _, err := svc.ListPresent(context.Background(), class.ID, d); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("日期 %q 期望 ErrInvalidDate，实际: %v", d, err)
		}
	}
}
