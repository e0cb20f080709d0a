package repoargs

// CategoryFilter фильтр списка категорий. ParentID == nil означает корневые категории,
// IsActive == nil - без фильтра по активности.
type CategoryFilter struct {
	ParentID *int64
	IsActive *bool
}

type ProductFilter struct {
	CategoryID *int64
	OnlyActive bool
}
