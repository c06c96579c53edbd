package repoargs

type RepositoryName string

const (
	UserRepoName       RepositoryName = "user"
	BalanceRepoName    RepositoryName = "balance"
	PaymentRepoName    RepositoryName = "payment"
	CountryRepoName    RepositoryName = "country"
	LocationRepoName   RepositoryName = "location"
	RestaurantRepoName RepositoryName = "restaurant"
	MenuRepoName       RepositoryName = "menu"
	FoodRepoName       RepositoryName = "food"
	CascadeRepoName    RepositoryName = "cascade"
)

// MaxLimit максимальное кол-во записей, возвращаемых одним запросом списка.
const MaxLimit = 10

// Page параметры постраничной выборки. Сортировка всегда по дате создания по убыванию.
type Page struct {
	Limit  uint
	Offset uint
}

// NewPage ограничивает limit значением MaxLimit. Нулевой limit заменяется на MaxLimit.
func NewPage(limit, offset uint) Page {
	if limit == 0 || limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Limit: limit, Offset: offset}
}
