package repoargs

type RepositoryName string

const (
	UserRepoName     RepositoryName = "user"
	CategoryRepoName RepositoryName = "category"
	ProductRepoName  RepositoryName = "product"
	OrderRepoName    RepositoryName = "order"
)
