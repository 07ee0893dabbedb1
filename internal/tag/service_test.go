package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"terminal-terrace/blog-api/internal/dto"
	articlemodel "terminal-terrace/blog-api/internal/model/article"
	"terminal-terrace/blog-api/internal/testutils"
	"terminal-terrace/blog-api/packages/response"
)

// TestTagServiceCreate 测试创建标签，slug 冲突返回409
func TestTagServiceCreate(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewTagService(NewTagRepository(db))

	existing := testutils.CreateTestTag(db)

	tests := []struct {
		name        string
		req         dto.CreateTagRequest
		expectError bool
		errorCode   response.ErrorCode
	}{
		{
			name: "创建新标签",
			req:  dto.CreateTagRequest{Name: "Go", Slug: "go"},
		},
		{
			name:        "slug 已被占用",
			req:         dto.CreateTagRequest{Name: "重名", Slug: existing.Slug},
			expectError: true,
			errorCode:   response.Conflict,
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
				assert.Equal(t, tt.req.Name, resp.Name)
				assert.Equal(t, tt.req.Slug, resp.Slug)
			}
		})
	}
}

// TestTagServiceDelete 删除标签级联清理文章关联，文章本身不受影响
func TestTagServiceDelete(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewTagService(NewTagRepository(db))

	tg := testutils.CreateTestTag(db)
	art := testutils.CreateTestArticle(db)
	testutils.LinkArticleTag(db, art.ID, tg.ID)

	bizErr := service.Delete(tg.ID)
	assert.Nil(t, bizErr)

	_, bizErr = service.Get(tg.ID)
	assert.NotNil(t, bizErr)
	assert.Equal(t, response.NotFound, bizErr.Code)

	// 关联行已随级联删除
	var count int64
	err := db.Model(&articlemodel.ArticleTag{}).
		Where("tag_id = ?", tg.ID).Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// 文章本身还在
	var remaining int64
	err = db.Model(&articlemodel.Article{}).
		Where("id = ?", art.ID).Count(&remaining).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), remaining)

	// 删除不存在的标签返回404
	bizErr = service.Delete(99999999)
	assert.NotNil(t, bizErr)
	assert.Equal(t, response.NotFound, bizErr.Code)
}

// TestTagServiceList 标签列表
func TestTagServiceList(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewTagService(NewTagRepository(db))

	tg1 := testutils.CreateTestTag(db)
	tg2 := testutils.CreateTestTag(db)

	items, bizErr := service.List()
	assert.Nil(t, bizErr)
	assert.Len(t, items, 2)

	ids := []uint{items[0].ID, items[1].ID}
	assert.Contains(t, ids, tg1.ID)
	assert.Contains(t, ids, tg2.ID)
}
