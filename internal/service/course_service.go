package service

import (
	"context"
	"edusync_backend/internal/config"
	"edusync_backend/internal/model"
	"edusync_backend/internal/repository"
	"edusync_backend/internal/util"
	"edusync_backend/pkg/logger"
	"edusync_backend/pkg/monitoring"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	UserRepo   *repository.UserRepository
	Storage    *StorageService
	Cfg        *config.Config
	DB         *gorm.DB
}

func NewCourseService(courseRepo *repository.CourseRepository, userRepo *repository.UserRepository, storage *StorageService, cfg *config.Config, db *gorm.DB) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		UserRepo:   userRepo,
		Storage:    storage,
		Cfg:        cfg,
		DB:         db,
	}
}

type CourseRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

func (s *CourseService) ListCourses(page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.List(page, limit)
}

// MyCourses lists the courses the calling educator instructs.
func (s *CourseService) MyCourses(instructorID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByInstructor(instructorID)
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	return course, err
}

func (s *CourseService) CreateCourse(instructorID uint, req CourseRequest) (*model.Course, error) {
	instructor, err := s.UserRepo.FindByID(instructorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if instructor.Role != model.Educator {
		return nil, util.ErrInvalidRole
	}

	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: instructor.ID,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, util.TranslateDBError(err)
	}
	return course, nil
}

// UpdateCourse is concurrency-checked: if the row changed since the
// caller read it, the write is refused instead of silently clobbering.
func (s *CourseService) UpdateCourse(id, requestingUserID uint, req CourseRequest) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if course.InstructorID != requestingUserID {
		return nil, util.ErrForbidden
	}

	affected, err := s.CourseRepo.UpdateChecked(course, map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
	})
	if err != nil {
		return nil, util.TranslateDBError(err)
	}
	if affected == 0 {
		if _, err := s.CourseRepo.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, util.ErrConcurrencyConflict
	}

	return s.CourseRepo.FindByID(id)
}

// DeleteCourse removes a course and everything hanging off it.
//
// The store only cascades below assessments (question -> option,
// question -> answer); every other edge is NO ACTION, so the dependents
// have to go first, leaves before parents:
//
//	media files (best effort, outside the transaction)
//	enrollments
//	per assessment: student answers, options, questions
//	assessments
//	the course itself
//
// Steps inside the transaction are all-or-nothing.
func (s *CourseService) DeleteCourse(ctx context.Context, courseID, requestingUserID uint) error {
	course, err := s.CourseRepo.FindByIDWithGraph(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		monitoring.CourseDeletions.WithLabelValues("not_found").Inc()
		return util.ErrNotFound
	} else if err != nil {
		return err
	}

	if course.InstructorID != requestingUserID {
		monitoring.CourseDeletions.WithLabelValues("forbidden").Inc()
		return util.ErrForbidden
	}

	s.deleteCourseMedia(ctx, course)

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", course.ID).Delete(&model.Enrollment{}).Error; err != nil {
			return util.TranslateDBError(err)
		}

		for _, assessment := range course.Assessments {
			if err := deleteAssessmentGraph(tx, &assessment); err != nil {
				return err
			}
		}

		if err := tx.Where("course_id = ?", course.ID).Delete(&model.Assessment{}).Error; err != nil {
			return util.TranslateDBError(err)
		}

		if err := tx.Delete(&model.Course{}, course.ID).Error; err != nil {
			return util.TranslateDBError(err)
		}
		return nil
	})

	if err != nil {
		monitoring.CourseDeletions.WithLabelValues("error").Inc()
		return err
	}

	monitoring.CourseDeletions.WithLabelValues("deleted").Inc()
	logger.Log.Info("course deleted",
		zap.Uint("courseId", course.ID),
		zap.Int("assessments", len(course.Assessments)),
		zap.Int("enrollments", len(course.Enrollments)),
	)
	return nil
}

// deleteAssessmentGraph removes one assessment's dependents in FK-safe
// order: answers and options before their questions. The assessment row
// itself is left to the caller.
func deleteAssessmentGraph(tx *gorm.DB, assessment *model.Assessment) error {
	questionIDs := make([]uint, 0, len(assessment.Questions))
	for _, q := range assessment.Questions {
		questionIDs = append(questionIDs, q.ID)
	}

	if len(questionIDs) > 0 {
		if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.StudentAnswer{}).Error; err != nil {
			return util.TranslateDBError(err)
		}
		if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Option{}).Error; err != nil {
			return util.TranslateDBError(err)
		}
	}

	if err := tx.Where("assessment_id = ?", assessment.ID).Delete(&model.Question{}).Error; err != nil {
		return util.TranslateDBError(err)
	}
	return nil
}

// deleteCourseMedia removes stored media files. Failures are logged and
// swallowed: the asset store is not transactional, and a missing file
// must never block the deletion of the course rows.
func (s *CourseService) deleteCourseMedia(ctx context.Context, course *model.Course) {
	if s.Storage == nil {
		return
	}
	for _, key := range []string{course.VideoURL, course.ThumbnailURL, course.ModulePdfURL} {
		if key == "" {
			continue
		}
		if err := s.Storage.Delete(ctx, key); err != nil {
			logger.Log.Warn("failed to delete course media",
				zap.Uint("courseId", course.ID),
				zap.String("file", key),
				zap.Error(err),
			)
		}
	}
}

// UploadVideo stores a course video and derives a thumbnail from it
// when the course has none yet.
func (s *CourseService) UploadVideo(ctx context.Context, courseID, requestingUserID uint, file *multipart.FileHeader) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if course.InstructorID != requestingUserID {
		return nil, util.ErrForbidden
	}

	ext := filepath.Ext(file.Filename)
	videoKey := "videos/" + time.Now().Format("20060102150405") + "-" +
		strings.ReplaceAll(file.Filename, " ", "-")

	tempDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, err
	}
	videoPath := filepath.Join(tempDir, fmt.Sprintf("temp_video_%d%s", time.Now().UnixNano(), ext))
	defer os.Remove(videoPath)

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeVideo}); err != nil {
		return nil, fmt.Errorf("only video content is allowed: %w", err)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	dst, err := os.Create(videoPath)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, err
	}
	dst.Close()

	if info, err := util.GetVideoInfo(videoPath); err != nil {
		logger.Log.Warn("failed to probe uploaded video", zap.Error(err))
	} else {
		logger.Log.Info("video uploaded",
			zap.Uint("courseId", course.ID),
			zap.Float64("durationSeconds", info.Duration),
			zap.Int("width", info.Width),
			zap.Int("height", info.Height),
		)
	}

	if _, err := s.Storage.UploadFile(ctx, videoKey, videoPath, file.Header.Get("Content-Type")); err != nil {
		return nil, err
	}

	if course.VideoURL != "" {
		if err := s.Storage.Delete(ctx, course.VideoURL); err != nil {
			logger.Log.Warn("failed to delete old course video", zap.Error(err))
		}
	}
	course.VideoURL = videoKey

	// Thumbnail from the third second of the video; keep any thumbnail
	// the instructor uploaded explicitly.
	if course.ThumbnailURL == "" {
		thumbKey := "thumbnails/" + time.Now().Format("20060102150405") + "-" +
			strings.ReplaceAll(strings.TrimSuffix(file.Filename, ext), " ", "-") + ".jpg"
		thumbPath := filepath.Join(tempDir, filepath.Base(thumbKey))
		defer os.Remove(thumbPath)

		if err := util.GenerateThumbnail(videoPath, thumbPath, "3"); err != nil {
			logger.Log.Error("failed to generate video thumbnail", zap.Error(err))
		} else if _, err := s.Storage.UploadFile(ctx, thumbKey, thumbPath, "image/jpeg"); err == nil {
			course.ThumbnailURL = thumbKey
		}
	}

	if err := s.CourseRepo.Save(course); err != nil {
		return nil, util.TranslateDBError(err)
	}
	return course, nil
}

// UploadAttachment stores a thumbnail image or module PDF for a course.
func (s *CourseService) UploadAttachment(ctx context.Context, courseID, requestingUserID uint, file *multipart.FileHeader, kind string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if course.InstructorID != requestingUserID {
		return nil, util.ErrForbidden
	}

	var allowed []string
	var folder string
	switch kind {
	case "thumbnail":
		allowed = []string{util.MimeImage}
		folder = "thumbnails"
	case "pdf":
		allowed = []string{util.MimePDF}
		folder = "pdfs"
	default:
		return nil, fmt.Errorf("unknown attachment kind %q", kind)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	contentType, err := util.ValidateMimeType(src, allowed)
	if err != nil {
		return nil, err
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	key := folder + "/" + time.Now().Format("20060102150405") + "-" +
		strings.ReplaceAll(file.Filename, " ", "-")
	if _, err := s.Storage.Upload(ctx, key, src, file.Size, contentType); err != nil {
		return nil, err
	}

	switch kind {
	case "thumbnail":
		if course.ThumbnailURL != "" {
			if err := s.Storage.Delete(ctx, course.ThumbnailURL); err != nil {
				logger.Log.Warn("failed to delete old thumbnail", zap.Error(err))
			}
		}
		course.ThumbnailURL = key
	case "pdf":
		if course.ModulePdfURL != "" {
			if err := s.Storage.Delete(ctx, course.ModulePdfURL); err != nil {
				logger.Log.Warn("failed to delete old module pdf", zap.Error(err))
			}
		}
		course.ModulePdfURL = key
	}

	if err := s.CourseRepo.Save(course); err != nil {
		return nil, util.TranslateDBError(err)
	}
	return course, nil
}
