package source

// DefaultTable covers the major Korean news outlets reachable through the
// search API. Operators extend or override it via the `sources` map in the
// config file. Prefixes are matched after protocol and known subdomain
// prefixes are stripped, so entries are bare domains plus optional subpaths.
func DefaultTable() []Entry {
	return []Entry{
		{Prefix: "biz.chosun.com", Name: "조선비즈"},
		{Prefix: "biz.heraldcorp.com", Name: "헤럴드경제"},
		{Prefix: "chosun.com", Name: "조선일보"},
		{Prefix: "dailian.co.kr", Name: "데일리안"},
		{Prefix: "donga.com", Name: "동아일보"},
		{Prefix: "edaily.co.kr", Name: "이데일리"},
		{Prefix: "etnews.com", Name: "전자신문"},
		{Prefix: "fnnews.com", Name: "파이낸셜뉴스"},
		{Prefix: "hani.co.kr", Name: "한겨레"},
		{Prefix: "hankookilbo.com", Name: "한국일보"},
		{Prefix: "hankyung.com", Name: "한국경제"},
		{Prefix: "joongang.co.kr", Name: "중앙일보"},
		{Prefix: "khan.co.kr", Name: "경향신문"},
		{Prefix: "kmib.co.kr", Name: "국민일보"},
		{Prefix: "kbs.co.kr", Name: "KBS"},
		{Prefix: "imbc.com", Name: "MBC"},
		{Prefix: "jtbc.co.kr", Name: "JTBC"},
		{Prefix: "mk.co.kr", Name: "매일경제"},
		{Prefix: "mk.co.kr/premium", Name: "매경프리미엄"},
		{Prefix: "moneytoday.co.kr", Name: "머니투데이"},
		{Prefix: "mt.co.kr", Name: "머니투데이"},
		{Prefix: "munhwa.com", Name: "문화일보"},
		{Prefix: "newsis.com", Name: "뉴시스"},
		{Prefix: "news1.kr", Name: "뉴스1"},
		{Prefix: "nocutnews.co.kr", Name: "노컷뉴스"},
		{Prefix: "ohmynews.com", Name: "오마이뉴스"},
		{Prefix: "pressian.com", Name: "프레시안"},
		{Prefix: "sbs.co.kr", Name: "SBS"},
		{Prefix: "sedaily.com", Name: "서울경제"},
		{Prefix: "segye.com", Name: "세계일보"},
		{Prefix: "seoul.co.kr", Name: "서울신문"},
		{Prefix: "sisain.co.kr", Name: "시사IN"},
		{Prefix: "sisajournal.com", Name: "시사저널"},
		{Prefix: "yna.co.kr", Name: "연합뉴스"},
		{Prefix: "ytn.co.kr", Name: "YTN"},
		{Prefix: "zdnet.co.kr", Name: "지디넷코리아"},
	}
}
