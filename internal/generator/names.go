package generator

import "math/rand"

// Name pools for fabricated account holders, romanized from the demo seed data.
var lastNames = []string{
	"Kim", "Lee", "Park", "Choi", "Jung", "Na", "Cho", "Jeon", "Jang", "Lim",
	"Han", "Oh", "Seo", "Shin", "Kwon", "Hwang", "Ahn", "Song", "Ryu", "Hong",
}

var firstNames = []string{
	"Yeongsu", "Yeongcheol", "Yeonhui", "Sunja", "Kyunghee", "Misook", "Yeongho", "Sanghyun", "Jeongsook", "Myeongja",
	"Donguk", "Jinho", "Yeongja", "Sookhee", "Yongho", "Seongmin", "Geumja", "Eunjeong", "Gwangsu", "Jaeho",
	"Jihoon", "Minho", "Jiyoung", "Sunok", "Seonghoon", "Minjeong", "Mina", "Eunyoung", "Donghyun", "Hyejin",
	"Sangwoo", "Mikyung", "Jeomrye", "Eunju", "Taehyun", "Sookyung", "Jeonghoon", "Miseon", "Byungsu", "Kyungsook",
	"Minsu", "Hyunwoo", "Jihyun", "Subin", "Jaemin", "Minji", "Seunghyun", "Eunji", "Jeongmin", "Hyewon",
	"Seongjin", "Seoyeon", "Seojun", "Soyoung", "Jinwoo", "Yunjeong", "Doyun", "Eunwoo", "Seongho", "Daeun",
}

// failureReasons is the fixed pool a FAILED transaction draws its reason from.
var failureReasons = []string{
	"insufficient balance",
	"daily limit exceeded",
	"account suspended",
	"invalid account",
}

func randomName(rnd *rand.Rand) string {
	return lastNames[rnd.Intn(len(lastNames))] + " " + firstNames[rnd.Intn(len(firstNames))]
}
