package service

import (
	"context"
	"testing"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/fsdevblog/botshop/internal/repository/repoargs"
	"github.com/fsdevblog/botshop/internal/service/mocks"
	"github.com/fsdevblog/botshop/pkg/uow"
	uowmocks "github.com/fsdevblog/botshop/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockUOW          *uowmocks.MockUOW
	mockCategoryRepo *mocks.MockCategoryRepository
	mockProductRepo  *mocks.MockProductRepository
	catalogService   *CatalogService
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (s *CatalogServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockCategoryRepo = mocks.NewMockCategoryRepository(s.mockCtrl)
	s.mockProductRepo = mocks.NewMockProductRepository(s.mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.CategoryRepoName)).
		Return(s.mockCategoryRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.ProductRepoName)).
		Return(s.mockProductRepo, nil).AnyTimes()

	catalogService, err := NewCatalogService(s.mockUOW)
	s.Require().NoError(err)
	s.catalogService = catalogService
}

func (s *CatalogServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *CatalogServiceTestSuite) TestListCategoryTree() {
	isActive := true
	parent := int64(1)
	roots := []domain.Category{{ID: 1, Slug: "tea"}, {ID: 2, Slug: "coffee"}}
	children := []domain.Category{{ID: 3, Slug: "green", ParentID: &parent}}

	s.mockCategoryRepo.EXPECT().List(gomock.Any(), repoargs.CategoryFilter{IsActive: &isActive}).Return(roots, nil)
	s.mockCategoryRepo.EXPECT().GetByParentIDs(gomock.Any(), []int64{1, 2}, &isActive).Return(children, nil)

	arena, err := s.catalogService.ListCategoryTree(context.Background(), CategoryFilter{IsActive: &isActive})
	s.Require().NoError(err)
	s.Len(arena.Roots(), 2)
	s.Require().Len(arena.Children(1), 1)
	s.Equal("green", arena.Children(1)[0].Slug)
	s.Empty(arena.Children(2))
}

func (s *CatalogServiceTestSuite) TestListCategoryTreeEmpty() {
	s.mockCategoryRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]domain.Category{}, nil)
	s.mockCategoryRepo.EXPECT().GetByParentIDs(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	arena, err := s.catalogService.ListCategoryTree(context.Background(), CategoryFilter{})
	s.Require().NoError(err)
	s.Zero(arena.Len())
}

func (s *CatalogServiceTestSuite) TestGetProductInactive() {
	s.mockProductRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
		Return(&domain.Product{ID: 7, Price: decimal.NewFromInt(1), IsActive: false}, nil)

	_, err := s.catalogService.GetProduct(context.Background(), 7)
	s.ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *CatalogServiceTestSuite) TestGetProduct() {
	s.mockProductRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
		Return(&domain.Product{ID: 7, Price: decimal.NewFromInt(1), IsActive: true}, nil)

	product, err := s.catalogService.GetProduct(context.Background(), 7)
	s.Require().NoError(err)
	s.Equal(int64(7), product.ID)
}

func (s *CatalogServiceTestSuite) TestListProducts() {
	categoryID := int64(3)
	s.mockProductRepo.EXPECT().
		List(gomock.Any(), repoargs.ProductFilter{CategoryID: &categoryID, OnlyActive: true}).
		Return([]domain.Product{{ID: 1}}, nil)

	products, err := s.catalogService.ListProducts(context.Background(), ProductFilter{
		CategoryID: &categoryID,
		OnlyActive: true,
	})
	s.Require().NoError(err)
	s.Len(products, 1)
}

func (s *CatalogServiceTestSuite) TestGetProductsEmptyIDs() {
	s.mockProductRepo.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Times(0)

	products, err := s.catalogService.GetProducts(context.Background(), nil)
	s.Require().NoError(err)
	s.Empty(products)
}
