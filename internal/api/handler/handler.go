package handler

import (
	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/service"
)

// Handler aggregates every HTTP handler
type Handler struct {
	Auth        *AuthHandler
	Branch      *BranchHandler
	Form        *FormHandler
	Application *ApplicationHandler
	Export      *ExportHandler
	Student     *StudentHandler
	Upload      *UploadHandler
	About       *AboutHandler

	News      *ContentHandler[dto.NewsRequest, dto.NewsResponse]
	Academics *ContentHandler[dto.AcademicProgramRequest, dto.AcademicProgramResponse]
	Carousel  *ContentHandler[dto.CarouselSlideRequest, dto.CarouselSlideResponse]
	Gallery   *ContentHandler[dto.GalleryCategoryRequest, dto.GalleryCategoryResponse]
	Careers   *ContentHandler[dto.CareerRequest, dto.CareerResponse]
}

// NewHandler builds the aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Branch:      NewBranchHandler(svc.Branch),
		Form:        NewFormHandler(svc.FormField),
		Application: NewApplicationHandler(svc.Application),
		Export:      NewExportHandler(svc.Export),
		Student:     NewStudentHandler(svc.Student),
		Upload:      NewUploadHandler(svc.Upload),
		About:       NewAboutHandler(svc.About),

		News:      NewContentHandler[dto.NewsRequest, dto.NewsResponse](svc.News, svc.News.Get),
		Academics: NewContentHandler[dto.AcademicProgramRequest, dto.AcademicProgramResponse](svc.Academic, ignoreVisibility(svc.Academic.Get)),
		Carousel:  NewContentHandler[dto.CarouselSlideRequest, dto.CarouselSlideResponse](svc.Carousel, ignoreVisibility(svc.Carousel.Get)),
		Gallery:   NewContentHandler[dto.GalleryCategoryRequest, dto.GalleryCategoryResponse](svc.Gallery, ignoreVisibility(svc.Gallery.Get)),
		Careers:   NewContentHandler[dto.CareerRequest, dto.CareerResponse](svc.Career, ignoreVisibility(svc.Career.Get)),
	}
}
