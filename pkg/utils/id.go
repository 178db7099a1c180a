package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const fileIDLength = 21

// GenerateFileID gera o nome usado para gravar arquivos enviados
func GenerateFileID() (string, error) {
	return gonanoid.Generate(characters, fileIDLength)
}
