package domain

// CategoryArena хранит категории плоско по ID. Связи родитель/потомок - это списки ID,
// которые разрешаются через поиск в арене, сами категории друг на друга не ссылаются.
type CategoryArena struct {
	byID     map[int64]Category
	roots    []int64
	children map[int64][]int64
}

// NewCategoryArena собирает арену из корневых категорий выборки и их потомков. Порядок корней и потомков
// сохраняется. Потомки, чей родитель не попал в арену, отбрасываются.
func NewCategoryArena(roots []Category, children []Category) *CategoryArena {
	a := &CategoryArena{
		byID:     make(map[int64]Category, len(roots)+len(children)),
		roots:    make([]int64, 0, len(roots)),
		children: make(map[int64][]int64, len(roots)),
	}
	for _, c := range roots {
		if _, exist := a.byID[c.ID]; exist {
			continue
		}
		a.byID[c.ID] = c
		a.roots = append(a.roots, c.ID)
	}
	for _, c := range children {
		if c.ParentID == nil {
			continue
		}
		if _, parentExist := a.byID[*c.ParentID]; !parentExist {
			continue
		}
		if _, exist := a.byID[c.ID]; exist {
			continue
		}
		a.byID[c.ID] = c
		a.children[*c.ParentID] = append(a.children[*c.ParentID], c.ID)
	}
	return a
}

func (a *CategoryArena) Get(id int64) (Category, bool) {
	c, ok := a.byID[id]
	return c, ok
}

// Roots возвращает корневые категории выборки в исходном порядке.
func (a *CategoryArena) Roots() []Category {
	return a.resolve(a.roots)
}

// Children возвращает прямых потомков категории id.
func (a *CategoryArena) Children(id int64) []Category {
	return a.resolve(a.children[id])
}

func (a *CategoryArena) Len() int {
	return len(a.byID)
}

func (a *CategoryArena) resolve(ids []int64) []Category {
	res := make([]Category, 0, len(ids))
	for _, id := range ids {
		res = append(res, a.byID[id])
	}
	return res
}
