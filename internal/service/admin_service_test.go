package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/raindropsacademy/tuition-backend/internal/dto"
	"github.com/raindropsacademy/tuition-backend/internal/model"
	"github.com/raindropsacademy/tuition-backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdminService(t *testing.T) (AdminService, *fakeUserRepo, *fakeCourseRepo, *fakeEnrollmentRepo) {
	t.Helper()

	users := newFakeUserRepo()
	courses := newFakeCourseRepo()
	enrollments := newFakeEnrollmentRepo()

	return NewAdminService(users, courses, enrollments), users, courses, enrollments
}

func createUserInput(role string) dto.CreateUserInput {
	return dto.CreateUserInput{
		Username: role + "-account",
		Email:    role + "@example.com",
		Password: "correct-horse",
		FullName: "Test " + role,
		Role:     role,
	}
}

func TestCreateTeacherGetsProfile(t *testing.T) {
	svc, _, _, _ := newTestAdminService(t)

	bio := "Twenty years of teaching."
	input := createUserInput(model.RoleTeacher)
	input.Biography = &bio
	input.YearsExperience = 20

	resp, err := svc.CreateUser(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, model.RoleTeacher, resp.Role.Name)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, &bio, resp.Profile.Biography)
	assert.Equal(t, 20, resp.Profile.YearsExperience)
}

func TestCreateStudentHasNoProfile(t *testing.T) {
	svc, _, _, _ := newTestAdminService(t)

	resp, err := svc.CreateUser(context.Background(), createUserInput(model.RoleStudent))
	require.NoError(t, err)

	assert.Equal(t, model.RoleStudent, resp.Role.Name)
	assert.Nil(t, resp.Profile)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestAdminService(t)

	_, err := svc.CreateUser(context.Background(), createUserInput(model.RoleStudent))
	require.NoError(t, err)

	input := createUserInput(model.RoleStudent)
	input.Username = "different-name"
	_, err = svc.CreateUser(context.Background(), input)
	assert.ErrorIs(t, err, apperror.ErrDuplicateEntity)
}

func TestDeleteUserWithActiveEnrollments(t *testing.T) {
	svc, _, _, enrollments := newTestAdminService(t)

	created, err := svc.CreateUser(context.Background(), createUserInput(model.RoleStudent))
	require.NoError(t, err)

	require.NoError(t, enrollments.Create(context.Background(), &model.Enrollment{
		UserID:   created.User.ID,
		CourseID: uuid.New(),
		Status:   model.EnrollmentActive,
	}))

	err = svc.DeleteUser(context.Background(), created.User.ID.String())
	assert.ErrorIs(t, err, apperror.ErrHasDependents)
}

func TestDeleteUserWithPendingEnrollment(t *testing.T) {
	svc, _, _, enrollments := newTestAdminService(t)

	created, err := svc.CreateUser(context.Background(), createUserInput(model.RoleStudent))
	require.NoError(t, err)

	// A pending enrollment still references the account; deletion must be
	// refused, not left to a storage-layer constraint violation.
	require.NoError(t, enrollments.Create(context.Background(), &model.Enrollment{
		UserID:   created.User.ID,
		CourseID: uuid.New(),
		Status:   model.EnrollmentPending,
	}))

	err = svc.DeleteUser(context.Background(), created.User.ID.String())
	assert.ErrorIs(t, err, apperror.ErrHasDependents)
}

func TestDeleteTeacherAssignedToCourse(t *testing.T) {
	svc, _, courses, _ := newTestAdminService(t)

	created, err := svc.CreateUser(context.Background(), createUserInput(model.RoleTeacher))
	require.NoError(t, err)

	teacherID := created.User.ID
	require.NoError(t, courses.Create(context.Background(), &model.Course{
		Name:       "Learning Quran",
		TuitionFee: 150,
		TeacherID:  &teacherID,
	}))

	err = svc.DeleteUser(context.Background(), teacherID.String())
	assert.ErrorIs(t, err, apperror.ErrHasDependents)
}

func TestDeleteUserWithoutDependents(t *testing.T) {
	svc, users, _, _ := newTestAdminService(t)

	created, err := svc.CreateUser(context.Background(), createUserInput(model.RoleStudent))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), created.User.ID.String()))

	_, err = users.FindByID(context.Background(), created.User.ID.String())
	assert.Error(t, err)
}

func TestUpdateUserPromotesToTeacher(t *testing.T) {
	svc, _, _, _ := newTestAdminService(t)

	created, err := svc.CreateUser(context.Background(), createUserInput(model.RoleStudent))
	require.NoError(t, err)

	bio := "New to teaching."
	resp, err := svc.UpdateUser(context.Background(), created.User.ID.String(), dto.UpdateUserInput{
		Role:      model.RoleTeacher,
		Biography: &bio,
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleTeacher, resp.Role.Name)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, &bio, resp.Profile.Biography)
}

func TestUpdateUserNotFound(t *testing.T) {
	svc, _, _, _ := newTestAdminService(t)

	_, err := svc.UpdateUser(context.Background(), uuid.New().String(), dto.UpdateUserInput{FullName: "Anyone"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
