package main

import "github.com/emilythestrangee/qna-forum/backend/cmd/qna/commands"

func main() {
	commands.Execute()
}
