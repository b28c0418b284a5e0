package controllers

import (
	"elearn/middleware"
	"net/http"
	"testing"

	courseValidators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newCatalogApp() *fiber.App {
	app := fiber.New()
	app.Get("/course/all", GetAllCourses)
	app.Get("/course/mycourse", middleware.JWTMiddleware, GetMyCourses)
	app.Get("/course/lecture/:id", middleware.JWTMiddleware, courseValidators.LectureID(), FetchLecture)
	app.Get("/course/:id", courseValidators.CourseID(), GetSingleCourse)
	app.Get("/course/:id/lectures", middleware.JWTMiddleware, courseValidators.CourseID(), FetchLectures)
	return app
}

func TestGetAllCourses_ExcludesDeleted(t *testing.T) {
	db := setupTestDB(t)
	app := newCatalogApp()

	createTestCourse(t, db, "Go Basics", 1000)
	deleted := createTestCourse(t, db, "Old Course", 1000)
	deleted.IsDeleted = true
	require.NoError(t, db.Save(&deleted).Error)

	resp := doRequest(t, app, http.MethodGet, "/course/all", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	courses := body["data"].(map[string]interface{})["courses"].([]interface{})
	require.Len(t, courses, 1)
}

func TestFetchLectures_DeniedWithoutSubscription(t *testing.T) {
	db := setupTestDB(t)
	app := newCatalogApp()

	user := createTestUser(t, db, "Learner", "learner@test.dev", "USER")
	course := createTestCourse(t, db, "Go Basics", 1000)
	createTestLecture(t, db, course.ID, "intro")

	resp := doRequest(t, app, http.MethodGet, "/course/1/lectures", authToken(t, user.ID), nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "You have not subscribed to this course!", body["message"])
	require.Nil(t, body["data"])
}

func TestFetchLectures_SubscriberAllowed(t *testing.T) {
	db := setupTestDB(t)
	app := newCatalogApp()

	user := createTestUser(t, db, "Learner", "learner@test.dev", "USER")
	course := createTestCourse(t, db, "Go Basics", 1000)
	createTestLecture(t, db, course.ID, "intro")
	createTestLecture(t, db, course.ID, "types")
	subscribe(t, db, user.ID, course.ID)

	resp := doRequest(t, app, http.MethodGet, "/course/1/lectures", authToken(t, user.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	lectures := body["data"].(map[string]interface{})["lectures"].([]interface{})
	require.Len(t, lectures, 2)
}

func TestFetchLectures_AdminBypassesSubscription(t *testing.T) {
	db := setupTestDB(t)
	app := newCatalogApp()

	admin := createTestUser(t, db, "Admin", "admin@test.dev", "ADMIN")
	course := createTestCourse(t, db, "Go Basics", 1000)
	createTestLecture(t, db, course.ID, "intro")

	resp := doRequest(t, app, http.MethodGet, "/course/1/lectures", authToken(t, admin.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFetchLecture_GateFollowsLectureCourse(t *testing.T) {
	db := setupTestDB(t)
	app := newCatalogApp()

	user := createTestUser(t, db, "Learner", "learner@test.dev", "USER")
	owned := createTestCourse(t, db, "Owned", 1000)
	other := createTestCourse(t, db, "Other", 1000)
	subscribe(t, db, user.ID, owned.ID)

	ownedLecture := createTestLecture(t, db, owned.ID, "mine")
	otherLecture := createTestLecture(t, db, other.ID, "not-mine")

	resp := doRequest(t, app, http.MethodGet,
		"/course/lecture/"+itoa(ownedLecture.ID), authToken(t, user.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet,
		"/course/lecture/"+itoa(otherLecture.ID), authToken(t, user.ID), nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetMyCourses_ListsOnlyOwned(t *testing.T) {
	db := setupTestDB(t)
	app := newCatalogApp()

	user := createTestUser(t, db, "Learner", "learner@test.dev", "USER")
	owned := createTestCourse(t, db, "Owned", 1000)
	createTestCourse(t, db, "Other", 1000)
	subscribe(t, db, user.ID, owned.ID)

	resp := doRequest(t, app, http.MethodGet, "/course/mycourse", authToken(t, user.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	courses := body["data"].(map[string]interface{})["courses"].([]interface{})
	require.Len(t, courses, 1)
	require.Equal(t, "Owned", courses[0].(map[string]interface{})["title"])
}
