package dto

type Turn struct {
	Role    string
	Content string
}

type SendInput struct {
	SystemText string
	Turns      []Turn
	Purpose    string
}

type SendOutput struct {
	Text  string
	Model string
}
