package tag

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"terminal-terrace/blog-api/internal/dto"
	"terminal-terrace/blog-api/internal/model/tag"
	"terminal-terrace/blog-api/packages/response"
)

type TagService struct {
	tagRepo *TagRepository
}

func NewTagService(tagRepo *TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

func (s *TagService) List() ([]dto.TagResponse, *response.BusinessError) {
	tags, err := s.tagRepo.List()
	if err != nil {
		return nil, internalError("获取标签列表失败", err)
	}

	items := make([]dto.TagResponse, 0, len(tags))
	for i := range tags {
		items = append(items, toTagResponse(&tags[i]))
	}
	return items, nil
}

func (s *TagService) Get(id uint) (*dto.TagResponse, *response.BusinessError) {
	t, err := s.tagRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("标签不存在")
		}
		return nil, internalError("获取标签失败", err)
	}
	resp := toTagResponse(t)
	return &resp, nil
}

func (s *TagService) Create(req dto.CreateTagRequest) (*dto.TagResponse, *response.BusinessError) {
	exists, err := s.tagRepo.SlugExists(req.Slug)
	if err != nil {
		return nil, internalError("校验 slug 失败", err)
	}
	if exists {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Conflict),
			response.WithErrorMessage(fmt.Sprintf("slug '%s' 已被占用", req.Slug)),
		)
	}

	t := &tag.Tag{
		Name:      req.Name,
		Slug:      req.Slug,
		CreatedAt: time.Now(),
	}
	if err := s.tagRepo.Create(t); err != nil {
		return nil, internalError("创建标签失败", err)
	}

	resp := toTagResponse(t)
	return &resp, nil
}

// Delete 删除标签，所有文章关联随级联一并消失
func (s *TagService) Delete(id uint) *response.BusinessError {
	affected, err := s.tagRepo.Delete(id)
	if err != nil {
		return internalError("删除标签失败", err)
	}
	if affected == 0 {
		return notFoundError("标签不存在")
	}
	return nil
}

func toTagResponse(t *tag.Tag) dto.TagResponse {
	return dto.TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

func notFoundError(msg string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.NotFound),
		response.WithErrorMessage(msg),
	)
}

func internalError(msg string, err error) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InternalError),
		response.WithErrorMessage(msg),
		response.WithError(err),
	)
}
