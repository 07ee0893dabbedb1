package article

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"terminal-terrace/blog-api/internal/dto"
	articlemodel "terminal-terrace/blog-api/internal/model/article"
	"terminal-terrace/blog-api/internal/testutils"
	"terminal-terrace/blog-api/packages/response"
)

// TestArticleServiceCreate 测试创建文章
func TestArticleServiceCreate(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewArticleService(NewArticleRepository(db), db)

	cat := testutils.CreateTestCategory(db)
	tag1 := testutils.CreateTestTag(db)
	tag2 := testutils.CreateTestTag(db)

	tests := []struct {
		name        string
		req         dto.CreateArticleRequest
		expectError bool
		errorCode   response.ErrorCode
		checkResult func(t *testing.T, resp *dto.ArticleResponse)
	}{
		{
			name: "创建带分类和标签的文章",
			req: dto.CreateArticleRequest{
				Title:      "第一篇文章",
				Content:    "<p>正文</p>",
				CategoryID: &cat.ID,
				Status:     articlemodel.StatusPublished,
				TagIDs:     []uint{tag1.ID, tag2.ID},
			},
			checkResult: func(t *testing.T, resp *dto.ArticleResponse) {
				assert.Equal(t, "第一篇文章", resp.Title)
				assert.Equal(t, "<p>正文</p>", resp.Content)
				assert.Equal(t, articlemodel.StatusPublished, resp.Status)
				assert.Len(t, resp.Tags, 2)
				assert.NotNil(t, resp.Category)
				assert.Equal(t, cat.ID, resp.Category.ID)
				assert.Equal(t, uint(0), resp.ViewCount)
				assert.Equal(t, uint(0), resp.LikeCount)
			},
		},
		{
			name: "创建无分类无标签的草稿",
			req: dto.CreateArticleRequest{
				Title:   "草稿",
				Content: "内容",
				Status:  articlemodel.StatusDraft,
			},
			checkResult: func(t *testing.T, resp *dto.ArticleResponse) {
				assert.Equal(t, articlemodel.StatusDraft, resp.Status)
				assert.Nil(t, resp.Category)
				assert.Empty(t, resp.Tags)
			},
		},
		{
			name: "分类不存在",
			req: dto.CreateArticleRequest{
				Title:      "坏分类",
				Content:    "内容",
				CategoryID: ptrUint(99999999),
				Status:     articlemodel.StatusPublished,
			},
			expectError: true,
			errorCode:   response.BadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, bizErr := service.Create(tt.req)

			if tt.expectError {
				assert.NotNil(t, bizErr)
				assert.Equal(t, tt.errorCode, bizErr.Code)
			} else {
				assert.Nil(t, bizErr)
				assert.NotNil(t, resp)
				if tt.checkResult != nil {
					tt.checkResult(t, resp)
				}
			}
		})
	}
}

// TestArticleServiceUpdate 更新是全量替换，标签集合整体换新
func TestArticleServiceUpdate(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewArticleService(NewArticleRepository(db), db)

	tag1 := testutils.CreateTestTag(db)
	tag2 := testutils.CreateTestTag(db)
	tag3 := testutils.CreateTestTag(db)

	created, bizErr := service.Create(dto.CreateArticleRequest{
		Title:   "原标题",
		Content: "原内容",
		Status:  articlemodel.StatusDraft,
		TagIDs:  []uint{tag1.ID, tag2.ID},
	})
	assert.Nil(t, bizErr)

	updated, bizErr := service.Update(created.ID, dto.UpdateArticleRequest{
		Title:   "新标题",
		Content: "新内容",
		Status:  articlemodel.StatusPublished,
		TagIDs:  []uint{tag3.ID},
	})
	assert.Nil(t, bizErr)
	assert.Equal(t, "新标题", updated.Title)
	assert.Equal(t, articlemodel.StatusPublished, updated.Status)
	assert.Len(t, updated.Tags, 1)
	assert.Equal(t, tag3.ID, updated.Tags[0].ID)

	// 更新不存在的文章
	_, bizErr = service.Update(99999999, dto.UpdateArticleRequest{
		Title:   "x",
		Content: "x",
		Status:  articlemodel.StatusDraft,
	})
	assert.NotNil(t, bizErr)
	assert.Equal(t, response.NotFound, bizErr.Code)
}

// TestArticleServicePublicDetail 公开详情只露出已发布文章，每次命中阅读量 +1
func TestArticleServicePublicDetail(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewArticleService(NewArticleRepository(db), db)

	published := testutils.CreateTestArticle(db)
	draft := testutils.CreateTestArticle(db, testutils.WithStatus(articlemodel.StatusDraft))

	tests := []struct {
		name      string
		id        uint
		wantErr   bool
		errorCode response.ErrorCode
	}{
		{name: "已发布文章", id: published.ID},
		{name: "草稿返回404", id: draft.ID, wantErr: true, errorCode: response.NotFound},
		{name: "不存在的文章返回404", id: 99999999, wantErr: true, errorCode: response.NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, bizErr := service.PublicDetail(tt.id)

			if tt.wantErr {
				assert.NotNil(t, bizErr)
				assert.Equal(t, tt.errorCode, bizErr.Code)
			} else {
				assert.Nil(t, bizErr)
				assert.Equal(t, tt.id, resp.ID)
				assert.NotEmpty(t, resp.Content)
			}
		})
	}

	// 阅读量随访问递增，返回值已包含本次访问
	first, bizErr := service.PublicDetail(published.ID)
	assert.Nil(t, bizErr)
	second, bizErr := service.PublicDetail(published.ID)
	assert.Nil(t, bizErr)
	assert.Equal(t, first.ViewCount+1, second.ViewCount)
}

// TestArticleServiceAdminDetail 管理端详情不限状态也不计阅读量
func TestArticleServiceAdminDetail(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewArticleService(NewArticleRepository(db), db)

	draft := testutils.CreateTestArticle(db, testutils.WithStatus(articlemodel.StatusDraft))

	resp, bizErr := service.AdminDetail(draft.ID)
	assert.Nil(t, bizErr)
	assert.Equal(t, draft.ID, resp.ID)
	assert.Equal(t, articlemodel.StatusDraft, resp.Status)
	assert.Equal(t, uint(0), resp.ViewCount)

	again, bizErr := service.AdminDetail(draft.ID)
	assert.Nil(t, bizErr)
	assert.Equal(t, uint(0), again.ViewCount)
}

// TestArticleServiceLike 点赞计数增减，取消点赞不会减到负数
func TestArticleServiceLike(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewArticleService(NewArticleRepository(db), db)

	art := testutils.CreateTestArticle(db)
	draft := testutils.CreateTestArticle(db, testutils.WithStatus(articlemodel.StatusDraft))

	// 计数为 0 时取消点赞是空操作，不报错
	resp, bizErr := service.Like(art.ID, "unlike")
	assert.Nil(t, bizErr)
	assert.Equal(t, uint(0), resp.LikeCount)

	resp, bizErr = service.Like(art.ID, "like")
	assert.Nil(t, bizErr)
	assert.Equal(t, uint(1), resp.LikeCount)

	resp, bizErr = service.Like(art.ID, "like")
	assert.Nil(t, bizErr)
	assert.Equal(t, uint(2), resp.LikeCount)

	resp, bizErr = service.Like(art.ID, "unlike")
	assert.Nil(t, bizErr)
	assert.Equal(t, uint(1), resp.LikeCount)

	// 草稿和不存在的文章都是 404
	_, bizErr = service.Like(draft.ID, "like")
	assert.NotNil(t, bizErr)
	assert.Equal(t, response.NotFound, bizErr.Code)

	_, bizErr = service.Like(99999999, "like")
	assert.NotNil(t, bizErr)
	assert.Equal(t, response.NotFound, bizErr.Code)
}

// TestArticleServiceDelete 删除后再取返回404
func TestArticleServiceDelete(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewArticleService(NewArticleRepository(db), db)

	art := testutils.CreateTestArticle(db)

	bizErr := service.Delete(art.ID)
	assert.Nil(t, bizErr)

	_, bizErr = service.AdminDetail(art.ID)
	assert.NotNil(t, bizErr)
	assert.Equal(t, response.NotFound, bizErr.Code)

	// 重复删除返回404
	bizErr = service.Delete(art.ID)
	assert.NotNil(t, bizErr)
	assert.Equal(t, response.NotFound, bizErr.Code)
}

// TestArticleServicePublicList 公开列表只含已发布文章，置顶优先
func TestArticleServicePublicList(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewArticleService(NewArticleRepository(db), db)

	normal := testutils.CreateTestArticle(db)
	pinned := testutils.CreateTestArticle(db, testutils.WithPinned())
	testutils.CreateTestArticle(db, testutils.WithStatus(articlemodel.StatusDraft))

	resp, bizErr := service.PublicList(dto.ArticleListQuery{Page: 1, PageSize: 10})
	assert.Nil(t, bizErr)
	assert.Equal(t, int64(2), resp.Total)
	assert.Len(t, resp.Items, 2)

	// 置顶文章排在前面
	assert.Equal(t, pinned.ID, resp.Items[0].ID)
	assert.Equal(t, normal.ID, resp.Items[1].ID)

	// 列表项不含正文
	for _, item := range resp.Items {
		assert.Empty(t, item.Content)
	}
}

// TestArticleServiceListFilters 按分类、标签、关键词过滤
func TestArticleServiceListFilters(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewArticleService(NewArticleRepository(db), db)

	cat := testutils.CreateTestCategory(db)
	tagged := testutils.CreateTestTag(db)

	inCat := testutils.CreateTestArticle(db, testutils.WithCategory(cat.ID))
	withTag := testutils.CreateTestArticle(db)
	testutils.LinkArticleTag(db, withTag.ID, tagged.ID)
	testutils.CreateTestArticle(db)

	byCategory, bizErr := service.PublicList(dto.ArticleListQuery{Page: 1, PageSize: 10, CategoryID: cat.ID})
	assert.Nil(t, bizErr)
	assert.Equal(t, int64(1), byCategory.Total)
	assert.Equal(t, inCat.ID, byCategory.Items[0].ID)

	byTag, bizErr := service.PublicList(dto.ArticleListQuery{Page: 1, PageSize: 10, TagID: tagged.ID})
	assert.Nil(t, bizErr)
	assert.Equal(t, int64(1), byTag.Total)
	assert.Equal(t, withTag.ID, byTag.Items[0].ID)

	byKeyword, bizErr := service.PublicList(dto.ArticleListQuery{Page: 1, PageSize: 10, Keyword: inCat.Title})
	assert.Nil(t, bizErr)
	assert.Equal(t, int64(1), byKeyword.Total)
}

// TestArticleServiceAdminList 管理端列表含草稿，可按状态过滤
func TestArticleServiceAdminList(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewArticleService(NewArticleRepository(db), db)

	testutils.CreateTestArticle(db)
	draft := testutils.CreateTestArticle(db, testutils.WithStatus(articlemodel.StatusDraft))

	all, bizErr := service.AdminList(dto.ArticleListQuery{Page: 1, PageSize: 10})
	assert.Nil(t, bizErr)
	assert.Equal(t, int64(2), all.Total)

	drafts, bizErr := service.AdminList(dto.ArticleListQuery{Page: 1, PageSize: 10, Status: articlemodel.StatusDraft})
	assert.Nil(t, bizErr)
	assert.Equal(t, int64(1), drafts.Total)
	assert.Equal(t, draft.ID, drafts.Items[0].ID)
}

// TestNormalizePage 分页参数钳制
func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{name: "正常参数", page: 2, pageSize: 20, wantPage: 2, wantPageSize: 20},
		{name: "页码为0", page: 0, pageSize: 10, wantPage: 1, wantPageSize: 10},
		{name: "页码为负数", page: -5, pageSize: 10, wantPage: 1, wantPageSize: 10},
		{name: "页大小为0", page: 1, pageSize: 0, wantPage: 1, wantPageSize: 10},
		{name: "页大小超上限", page: 1, pageSize: 500, wantPage: 1, wantPageSize: 100},
		{name: "页大小正好100", page: 1, pageSize: 100, wantPage: 1, wantPageSize: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := normalizePage(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}

// TestArticleServiceTogglePin 置顶开关来回切换
func TestArticleServiceTogglePin(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewArticleService(NewArticleRepository(db), db)

	art := testutils.CreateTestArticle(db)

	resp, bizErr := service.TogglePin(art.ID)
	assert.Nil(t, bizErr)
	assert.True(t, resp.IsPinned)

	resp, bizErr = service.TogglePin(art.ID)
	assert.Nil(t, bizErr)
	assert.False(t, resp.IsPinned)

	_, bizErr = service.TogglePin(99999999)
	assert.NotNil(t, bizErr)
	assert.Equal(t, response.NotFound, bizErr.Code)
}

func ptrUint(v uint) *uint {
	return &v
}
