package user

type ApiGroup struct {
	ChatApi
}
