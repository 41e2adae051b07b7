package service

import (
	"fmt"
	"log"

	"github.com/meilisearch/meilisearch-go"
	"github.com/raindropsacademy/tuition-backend/internal/model"
)

// CourseSearchService maintains the Meilisearch catalog index. Indexing errors
// are reported but never fail the catalog mutation that triggered them.
type CourseSearchService interface {
	IndexCourse(course *model.Course) error
	DeleteCourse(id string) error
	Search(query string, limit int64) ([]string, error)
}

type courseSearchService struct {
	client meilisearch.ServiceManager
}

func NewCourseSearchService(client meilisearch.ServiceManager) CourseSearchService {
	s := &courseSearchService{client: client}
	s.initIndex()
	return s
}

func (s *courseSearchService) initIndex() {
	sortableAttrs := []string{"created_at", "tuition_fee"}
	if _, err := s.client.Index("courses").UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update courses sortable attributes: %v", err)
	}

	log.Println("Meilisearch course index initialized")
}

type meiliCourseDoc struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	TuitionFee  float64  `json:"tuition_fee"`
	Features    []string `json:"features"`
	TeacherName string   `json:"teacher_name"`
	CreatedAt   int64    `json:"created_at"`
}

func (s *courseSearchService) IndexCourse(course *model.Course) error {
	doc := meiliCourseDoc{
		ID:          course.ID.String(),
		Name:        course.Name,
		Description: course.Description,
		Duration:    course.Duration,
		TuitionFee:  course.TuitionFee,
		Features:    course.FeatureList(),
		CreatedAt:   course.CreatedAt.Unix(),
	}
	if course.Teacher != nil {
		doc.TeacherName = course.Teacher.FullName
	}

	if _, err := s.client.Index("courses").AddDocuments([]meiliCourseDoc{doc}, strPtr("id")); err != nil {
		return fmt.Errorf("failed to index course %s: %w", course.ID, err)
	}

	return nil
}

func (s *courseSearchService) DeleteCourse(id string) error {
	if _, err := s.client.Index("courses").DeleteDocument(id); err != nil {
		return fmt.Errorf("failed to remove course %s from index: %w", id, err)
	}

	return nil
}

func (s *courseSearchService) Search(query string, limit int64) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}

	resp, err := s.client.Index("courses").Search(query, &meilisearch.SearchRequest{
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("course search failed: %w", err)
	}

	return idsFromHits(resp.Hits), nil
}

// idsFromHits decodes the document ID out of each search hit, skipping hits
// without one.
func idsFromHits(hits []meilisearch.Hit) []string {
	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		var doc struct {
			ID string `json:"id"`
		}
		if err := hit.Decode(&doc); err != nil || doc.ID == "" {
			continue
		}
		ids = append(ids, doc.ID)
	}

	return ids
}

func strPtr(s string) *string {
	return &s
}
