package dto

// CreateArticleRequest 创建文章请求，创建和更新共用同一组字段（全量替换）
type CreateArticleRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Content     string `json:"content" binding:"required"`
	Cover       string `json:"cover" binding:"omitempty,max=500"`
	CategoryID  *uint  `json:"category_id"`
	Description string `json:"description"`
	Keywords    string `json:"keywords" binding:"omitempty,max=500"`
	// 状态: draft(草稿), published(已发布)，无自动流转
	Status string `json:"status" binding:"required,oneof=draft published"`
	// 标签ID集合，保存时整体替换旧关联
	TagIDs []uint `json:"tag_ids"`
}

// UpdateArticleRequest 更新文章请求，语义为可变字段全量替换
type UpdateArticleRequest = CreateArticleRequest

// LikeArticleRequest 点赞/取消点赞请求
type LikeArticleRequest struct {
	Action string `json:"action" binding:"required,oneof=like unlike"`
}

// ArticleListQuery 列表查询参数
type ArticleListQuery struct {
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"pageSize,default=10"`
	CategoryID uint   `form:"categoryId"`
	TagID      uint   `form:"tagId"`
	Keyword    string `form:"keyword"`
	// 仅管理端生效的状态过滤
	Status string `form:"status" binding:"omitempty,oneof=draft published"`
}

// TagBrief 文章响应里内嵌的标签摘要
type TagBrief struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryBrief 文章响应里内嵌的分类摘要
type CategoryBrief struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ArticleResponse 文章详情响应
type ArticleResponse struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Content     string         `json:"content,omitempty"`
	Cover       string         `json:"cover,omitempty"`
	CategoryID  *uint          `json:"category_id,omitempty"`
	Category    *CategoryBrief `json:"category,omitempty"`
	Description string         `json:"description,omitempty"`
	Keywords    string         `json:"keywords,omitempty"`
	Status      string         `json:"status"`
	ViewCount   uint           `json:"view_count"`
	LikeCount   uint           `json:"like_count"`
	IsPinned    bool           `json:"is_pinned"`
	Tags        []TagBrief     `json:"tags"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// ArticleListResponse 文章列表响应（分页）
type ArticleListResponse struct {
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Items    []ArticleResponse `json:"items"`
}
