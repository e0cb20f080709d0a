package repoargs

type CreateUser struct {
	TelegramID int64
	Username   *string
	FirstName  *string
	LastName   *string
}
