package cache

const formKeyPrefix = "form:"

func FormKey(id string) string {
	return formKeyPrefix + id
}

func FormPattern() string {
	return formKeyPrefix + "*"
}
