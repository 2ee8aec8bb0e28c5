package catalog

// accounts is the closed universe of extractable items. Order matters: the
// resolver breaks score ties by this order.
var accounts = []AccountDefinition{
	{1, "날짜", []string{"기준일", "결산일", "보고서일"}, CategoryBasic},
	{2, "은행명", []string{"금융기관명", "회사명", "법인명"}, CategoryBasic},

	{3, "대출금", []string{"대출채권", "대출자산", "대출금잔액"}, CategoryBalanceSheet},
	{4, "예수금", []string{"예수부채", "고객예금", "예금"}, CategoryBalanceSheet},
	{5, "자기자본", []string{"자본총계", "총자본", "순자산"}, CategoryBalanceSheet},
	{14, "총자산", []string{"자산총계", "총자산", "자산합계"}, CategoryBalanceSheet},
	{15, "현금및예치금", []string{"현금및현금성자산", "현금예치금"}, CategoryBalanceSheet},
	{16, "유가증권", []string{"투자자산", "투자유가증권", "금융자산"}, CategoryBalanceSheet},
	{17, "대출금(상세)", []string{"대출채권", "대출금명세"}, CategoryBalanceSheet},
	{18, "대손충당금", []string{"대손충당부채", "신용손실충당금", "대출손실충당금"}, CategoryBalanceSheet},
	{19, "유형자산", []string{"유형자산", "고정자산", "설비자산"}, CategoryBalanceSheet},
	{20, "기타자산", []string{"기타자산", "기타유동자산", "기타비유동자산"}, CategoryBalanceSheet},
	{21, "예수금(상세)", []string{"예수금명세", "고객예금명세"}, CategoryBalanceSheet},
	{22, "자기자본(상세)", []string{"자본금", "자본잉여금", "이익잉여금"}, CategoryBalanceSheet},

	{6, "이자수익", []string{"이자수입", "대출이자수익", "이자소득"}, CategoryIncomeStatement},
	{7, "이자비용", []string{"이자비용", "예금이자비용", "차입이자"}, CategoryIncomeStatement},
	{9, "대손상각비", []string{"신용손실비용", "대손충당금전입액", "신용손실충당금전입액"}, CategoryIncomeStatement},
	{10, "당기순이익", []string{"당기순손익", "순이익", "당기총포괄이익"}, CategoryIncomeStatement},
	{24, "영업수익", []string{"영업수익", "총영업수익", "영업수익합계"}, CategoryIncomeStatement},
	{25, "이자수익(상세)", []string{"대출이자", "예금이자", "유가증권이자"}, CategoryIncomeStatement},
	{26, "유가증권 처분이익", []string{"유가증권처분이익", "매매이익", "투자자산처분이익"}, CategoryIncomeStatement},
	{27, "대출채권매각이익", []string{"대출채권매각이익", "매각이익"}, CategoryIncomeStatement},
	{28, "수수료수익", []string{"수수료수익", "수수료수입", "서비스수익"}, CategoryIncomeStatement},
	{29, "배당금수익", []string{"배당금수익", "배당수익", "투자배당금"}, CategoryIncomeStatement},
	{30, "기타영업수익", []string{"기타영업수익", "기타수익"}, CategoryIncomeStatement},
	{31, "영업비용", []string{"영업비용", "총영업비용", "영업비용합계"}, CategoryIncomeStatement},
	{32, "이자비용(상세)", []string{"예금이자", "차입금이자", "사채이자"}, CategoryIncomeStatement},
	{33, "유가증권 처분손실", []string{"유가증권처분손실", "매매손실", "투자자산처분손실"}, CategoryIncomeStatement},
	{34, "대출채권매각손실", []string{"대출채권매각손실", "매각손실"}, CategoryIncomeStatement},
	{35, "수수료비용", []string{"수수료비용", "지급수수료", "서비스비용"}, CategoryIncomeStatement},
	{36, "판관비", []string{"판매비와관리비", "판관비", "일반관리비"}, CategoryIncomeStatement},
	{37, "기타영업비용", []string{"기타영업비용", "기타비용"}, CategoryIncomeStatement},
	{38, "영업이익", []string{"영업이익", "영업손익", "영업이익(손실)"}, CategoryIncomeStatement},
	{39, "영업외수익", []string{"영업외수익", "기타수익", "특별이익"}, CategoryIncomeStatement},
	{40, "영업외비용", []string{"영업외비용", "기타비용", "특별손실"}, CategoryIncomeStatement},
	{41, "당기순이익(상세)", []string{"법인세차감전순이익", "법인세비용", "당기순이익"}, CategoryIncomeStatement},

	{42, "유가증권 잔액", []string{"유가증권잔액", "투자자산잔액"}, CategorySecurities},
	{43, "유가증권 수익", []string{"유가증권관련수익", "투자수익"}, CategorySecurities},
	{44, "유가증권 이자수익", []string{"채권이자수익", "유가증권이자"}, CategorySecurities},
	{45, "유가증권 처분이익(상세)", []string{"매매이익", "처분이익내역"}, CategorySecurities},
	{46, "유가증권 배당금수익", []string{"주식배당금", "펀드배당금"}, CategorySecurities},
	{47, "지분법평가이익", []string{"지분법이익", "관계기업투자이익"}, CategorySecurities},
	{48, "유가증권 비용", []string{"유가증권관련비용", "투자비용"}, CategorySecurities},
	{49, "유가증권 처분손실(상세)", []string{"매매손실", "처분손실내역"}, CategorySecurities},
	{50, "유가증권 평가손실", []string{"평가손실", "미실현손실"}, CategorySecurities},
	{51, "유가증권 손상차손", []string{"손상차손", "투자자산손상차손"}, CategorySecurities},
	{52, "지분법평가손실", []string{"지분법손실", "관계기업투자손실"}, CategorySecurities},

	{53, "충당금적립률", []string{"충당금적립률", "대손충당금비율"}, CategoryLoanProvision},
	{54, "대출평잔", []string{"대출금평균잔액", "평균대출금"}, CategoryLoanProvision},
	{55, "대출채권매각이익(A)", []string{"매각이익A", "대출매각수익"}, CategoryLoanProvision},
	{56, "대출채권매각손실(B)", []string{"매각손실B", "대출매각비용"}, CategoryLoanProvision},
	{57, "실질대손상각비(B-A)", []string{"순대손상각비", "실질대손비용"}, CategoryLoanProvision},

	{59, "경비 총계", []string{"판매비와관리비", "총경비", "영업경비"}, CategoryExpense},
	{60, "광고선전비", []string{"광고비", "마케팅비용", "홍보비"}, CategoryExpense},
	{61, "전산업무비", []string{"IT비용", "전산비", "시스템운영비"}, CategoryExpense},
	{62, "용역비", []string{"아웃소싱비", "외주비", "용역수수료"}, CategoryExpense},
	{63, "세금과공과", []string{"세금", "공과금", "조세공과"}, CategoryExpense},
	{64, "임차료", []string{"임대료", "부동산임차료", "리스료"}, CategoryExpense},
	{65, "감가상각비", []string{"유형자산감가상각비", "감가상각"}, CategoryExpense},
	{66, "무형자산상각비", []string{"무형자산상각", "소프트웨어상각"}, CategoryExpense},
	{67, "기타경비", []string{"기타판관비", "잡비"}, CategoryExpense},
	{68, "대출금 평잔(억원)", []string{"대출평잔", "평균대출잔액"}, CategoryExpense},

	{71, "인건비 총계", []string{"인건비", "급여총액", "인건비합계"}, CategoryPersonnel},
	{72, "인건비", []string{"급여", "임금", "보수"}, CategoryPersonnel},
	{73, "복리후생비", []string{"복지비", "복리비", "후생비"}, CategoryPersonnel},
	{74, "평균 직원수", []string{"직원수", "종업원수", "임직원수"}, CategoryPersonnel},
	{75, "인당 인건비", []string{"1인당인건비", "평균인건비"}, CategoryPersonnel},

	{8, "예대마진율", []string{"예대마진", "NIM", "순이자마진"}, CategoryKeyRatio},
	{11, "BIS", []string{"BIS비율", "자기자본비율"}, CategoryKeyRatio},
	{12, "고정이하여신비율", []string{"고정이하비율", "부실여신비율"}, CategoryKeyRatio},
	{13, "연체율", []string{"연체율", "대출연체율"}, CategoryKeyRatio},
	{23, "BIS비율(상세)", []string{"기본자본비율", "보완자본비율"}, CategoryKeyRatio},
	{58, "대손상각비율", []string{"대손비율", "상각률"}, CategoryKeyRatio},
	{69, "대출금 평잔 比 경비율", []string{"경비율", "영업경비율"}, CategoryKeyRatio},
	{70, "대출금 평잔 比 광고비율", []string{"광고비율", "마케팅비율"}, CategoryKeyRatio},
}

// Well-known ids referenced by the derived metrics.
const (
	IDInterestIncome     = 6
	IDInterestExpense    = 7
	IDInterestMargin     = 8
	IDLoanSaleGain       = 55
	IDLoanSaleLoss       = 56
	IDNetChargeOff       = 57
	IDNonPerformingRatio = 12
)
