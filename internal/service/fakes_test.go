package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/raindropsacademy/tuition-backend/internal/model"
	"github.com/raindropsacademy/tuition-backend/pkg/gateway"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mimic the storage layer closely enough for
// service tests: gorm.ErrRecordNotFound on misses, gorm.ErrDuplicatedKey on
// unique index violations, and IDs assigned on create.

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
	roles map[string]*model.Role
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[uuid.UUID]*model.User),
		roles: map[string]*model.Role{
			model.RoleAdmin:   {ID: 1, Name: model.RoleAdmin},
			model.RoleTeacher: {ID: 2, Name: model.RoleTeacher},
			model.RoleStudent: {ID: 3, Name: model.RoleStudent},
		},
	}
}

// scan returns a copy with the role resolved, like a real row scan with its
// preloads. Callers are free to mutate the result.
func (r *fakeUserRepo) scan(u *model.User) *model.User {
	copied := *u
	if copied.RoleID != nil {
		for _, role := range r.roles {
			if role.ID == *copied.RoleID {
				copied.Role = *role
			}
		}
	}
	return &copied
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User, profile *model.TeacherProfile) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if profile != nil {
		profile.UserID = user.ID
		user.Profile = profile
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	user, ok := r.users[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.scan(user), nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return r.scan(user), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return r.scan(user), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindRoleByName(_ context.Context, name string) (*model.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User, profile *model.TeacherProfile) error {
	if profile != nil {
		user.Profile = profile
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*model.User, error) {
	var users []*model.User
	for _, user := range r.users {
		users = append(users, r.scan(user))
	}
	return users, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, uid)
	return nil
}

type fakeCourseRepo struct {
	courses map[uuid.UUID]*model.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[uuid.UUID]*model.Course)}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) FindByID(_ context.Context, id string) (*model.Course, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	course, ok := r.courses[cid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (r *fakeCourseRepo) FindAll(_ context.Context) ([]*model.Course, error) {
	var courses []*model.Course
	for _, course := range r.courses {
		courses = append(courses, course)
	}
	return courses, nil
}

func (r *fakeCourseRepo) FindByTeacher(_ context.Context, teacherID string) ([]*model.Course, error) {
	var courses []*model.Course
	for _, course := range r.courses {
		if course.TeacherID != nil && course.TeacherID.String() == teacherID {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

func (r *fakeCourseRepo) CountByTeacher(ctx context.Context, teacherID string) (int64, error) {
	courses, _ := r.FindByTeacher(ctx, teacherID)
	return int64(len(courses)), nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *model.Course) error {
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id string) error {
	cid, err := uuid.Parse(id)
	if err != nil {
		return gorm.ErrRecordNotFound
	}
	delete(r.courses, cid)
	return nil
}

type fakeEnrollmentRepo struct {
	enrollments map[uuid.UUID]*model.Enrollment
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrollments: make(map[uuid.UUID]*model.Enrollment)}
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, enrollment *model.Enrollment) error {
	for _, existing := range r.enrollments {
		if existing.UserID == enrollment.UserID && existing.CourseID == enrollment.CourseID {
			return gorm.ErrDuplicatedKey
		}
	}
	if enrollment.ID == uuid.Nil {
		enrollment.ID = uuid.New()
	}
	r.enrollments[enrollment.ID] = enrollment
	return nil
}

func (r *fakeEnrollmentRepo) FindByID(_ context.Context, id string) (*model.Enrollment, error) {
	eid, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	enrollment, ok := r.enrollments[eid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// Copy so service-side mutations only persist through Update or
	// CompleteWithEnrollment, as with a real row scan.
	copied := *enrollment
	return &copied, nil
}

func (r *fakeEnrollmentRepo) FindByStudentAndCourse(_ context.Context, userID, courseID string) (*model.Enrollment, error) {
	for _, enrollment := range r.enrollments {
		if enrollment.UserID.String() == userID && enrollment.CourseID.String() == courseID {
			copied := *enrollment
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEnrollmentRepo) FindByStudent(_ context.Context, userID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, enrollment := range r.enrollments {
		if enrollment.UserID.String() == userID {
			result = append(result, *enrollment)
		}
	}
	return result, nil
}

func (r *fakeEnrollmentRepo) FindActive(_ context.Context) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, enrollment := range r.enrollments {
		if enrollment.Status == model.EnrollmentActive {
			result = append(result, *enrollment)
		}
	}
	return result, nil
}

func (r *fakeEnrollmentRepo) FindActiveByTeacher(_ context.Context, teacherID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, enrollment := range r.enrollments {
		if enrollment.Status != model.EnrollmentActive || enrollment.Course == nil {
			continue
		}
		if enrollment.Course.TeacherID != nil && enrollment.Course.TeacherID.String() == teacherID {
			result = append(result, *enrollment)
		}
	}
	return result, nil
}

func (r *fakeEnrollmentRepo) CountByCourse(_ context.Context, courseID string) (int64, error) {
	var count int64
	for _, enrollment := range r.enrollments {
		if enrollment.CourseID.String() == courseID {
			count++
		}
	}
	return count, nil
}

func (r *fakeEnrollmentRepo) CountByStudent(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, enrollment := range r.enrollments {
		if enrollment.UserID.String() == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeEnrollmentRepo) Update(_ context.Context, enrollment *model.Enrollment) error {
	copied := *enrollment
	r.enrollments[enrollment.ID] = &copied
	return nil
}

type fakePaymentRepo struct {
	payments    map[uuid.UUID]*model.Payment
	enrollments *fakeEnrollmentRepo
}

func newFakePaymentRepo(enrollments *fakeEnrollmentRepo) *fakePaymentRepo {
	return &fakePaymentRepo{
		payments:    make(map[uuid.UUID]*model.Payment),
		enrollments: enrollments,
	}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *model.Payment) error {
	for _, existing := range r.payments {
		if existing.TransactionID == payment.TransactionID {
			return gorm.ErrDuplicatedKey
		}
	}
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	copied := *payment
	r.payments[payment.ID] = &copied
	return nil
}

func (r *fakePaymentRepo) CompleteWithEnrollment(ctx context.Context, payment *model.Payment, enrollment *model.Enrollment) error {
	if payment.ID == uuid.Nil {
		if err := r.Create(ctx, payment); err != nil {
			return err
		}
	} else {
		copied := *payment
		r.payments[payment.ID] = &copied
	}
	return r.enrollments.Update(ctx, enrollment)
}

func (r *fakePaymentRepo) FindByTransactionID(_ context.Context, transactionID string) (*model.Payment, error) {
	for _, payment := range r.payments {
		if payment.TransactionID == transactionID {
			copied := *payment
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePaymentRepo) FindByIntentID(_ context.Context, intentID string) (*model.Payment, error) {
	for _, payment := range r.payments {
		if payment.StripePaymentIntent != nil && *payment.StripePaymentIntent == intentID {
			copied := *payment
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePaymentRepo) FindByEnrollment(_ context.Context, enrollmentID string) ([]model.Payment, error) {
	var result []model.Payment
	for _, payment := range r.payments {
		if payment.EnrollmentID.String() == enrollmentID {
			result = append(result, *payment)
		}
	}
	return result, nil
}

func (r *fakePaymentRepo) Update(_ context.Context, payment *model.Payment) error {
	copied := *payment
	r.payments[payment.ID] = &copied
	return nil
}

// fakeGateway hands out sequential intents and replays whatever state the
// test parked on them.
type fakeGateway struct {
	intents map[string]*gateway.Intent
	seq     int
	err     error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{intents: make(map[string]*gateway.Intent)}
}

func (g *fakeGateway) CreateIntent(_ context.Context, amountCents int64, currency, _, _, _ string) (*gateway.Intent, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.seq++
	intent := &gateway.Intent{
		ID:           fmt.Sprintf("pi_test_%d", g.seq),
		ClientSecret: fmt.Sprintf("pi_test_%d_secret", g.seq),
		CustomerID:   "cus_test",
		AmountCents:  amountCents,
		Currency:     currency,
	}
	g.intents[intent.ID] = intent
	return intent, nil
}

func (g *fakeGateway) RetrieveIntent(_ context.Context, intentID string) (*gateway.Intent, error) {
	if g.err != nil {
		return nil, g.err
	}
	intent, ok := g.intents[intentID]
	if !ok {
		return nil, fmt.Errorf("no such intent %s", intentID)
	}
	copied := *intent
	return &copied, nil
}

func (g *fakeGateway) succeed(intentID string) {
	if intent, ok := g.intents[intentID]; ok {
		intent.Succeeded = true
	}
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

type fakeSearch struct {
	indexed []string
	deleted []string
	hits    []string
	err     error
}

func (s *fakeSearch) IndexCourse(course *model.Course) error {
	if s.err != nil {
		return s.err
	}
	s.indexed = append(s.indexed, course.ID.String())
	return nil
}

func (s *fakeSearch) DeleteCourse(id string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeSearch) Search(_ string, _ int64) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.hits, nil
}

type fakeImageStorage struct {
	uploads []string
	deleted []string
	err     error
}

func (s *fakeImageStorage) UploadImage(_ context.Context, _ io.Reader, folder, fileName string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	url := fmt.Sprintf("https://img.test/%s/%s", folder, fileName)
	s.uploads = append(s.uploads, url)
	return url, nil
}

func (s *fakeImageStorage) DeleteImage(_ context.Context, fileURL string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, fileURL)
	return nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
