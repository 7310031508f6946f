package announce

func tokyoMetro(v vars, arriving bool) (*speech, *speech) {
	ja, en := newJA(), newEN()
	if arriving {
		if v.nextTerm {
			ja.add("まもなく、終点、" + v.nextJA + "です。")
			en.add("Arriving at " + v.numbered(true) + ", the last stop.")
		} else {
			ja.add("まもなく、" + v.nextJA + "です。")
			en.add("Arriving at " + v.numbered(true) + ".")
		}
		ja.add(wrap("", v.transfersJA, "は、お乗り換えです。"))
		en.add(wrap("Please change here for the ", v.transfersEN, "."))
		ja.when(v.nextTerm, "本日も、東京メトロをご利用いただきまして、ありがとうございました。")
		en.when(v.nextTerm, "Thank you for using Tokyo Metro.")
		return ja, en
	}

	if v.first {
		ja.add("今日も、東京メトロをご利用いただきまして、ありがとうございます。")
		ja.add(wrap("この電車は、", joinJA(v.lineJA, v.boundJA), "です。"))
		ja.add(wrap("", v.connectedJA, "直通です。"))
		en.add(wrap("This is the ", spaced(v.lineEN, "train", v.boundEN), "."))
		en.add(wrap("This train will run through onto the ", v.connectedEN, "."))
	}
	if v.nextTerm {
		ja.add("次は、終点、" + v.nextJA + "です。")
		en.add("The next station is " + v.numbered(true) + ", the last stop.")
	} else {
		ja.add("次は、" + v.nextJA + "です。")
		en.add("The next station is " + v.numbered(true) + ".")
	}
	ja.add(wrap("", v.transfersJA, "は、お乗り換えです。"))
	en.add(wrap("Please change here for the ", v.transfersEN, "."))
	return ja, en
}

func tokyu(v vars, arriving bool) (*speech, *speech) {
	ja, en := newJA(), newEN()
	if arriving {
		if v.nextTerm {
			ja.add("まもなく、" + v.nextJA + "、" + v.nextJA + "。この電車は、" + v.nextJA + "止まりです。")
			en.add("We will soon be arriving at " + v.numberedParen(true) + ", the last stop.")
		} else {
			ja.add("まもなく、" + v.nextJA + "、" + v.nextJA + "。")
			en.add("We will soon make a brief stop at " + v.numberedParen(true) + ".")
		}
		ja.add(wrap("", v.transfersJA, "は、お乗り換えください。"))
		en.add(wrap("Please transfer at this station for the ", v.transfersEN, "."))
		return ja, en
	}

	if v.first {
		ja.add("今日も、東急線をご利用いただきまして、ありがとうございます。")
		ja.add(wrap("この電車は、", joinJA(v.typeJA, v.boundJA), "です。"))
		en.add("Thank you for using the Tokyu Line.")
		en.add(wrap("This is the ", spaced(v.typeEN, "train", v.boundEN), "."))
		en.add(wrap("This train will run through onto the ", v.connectedEN, "."))
	}
	if v.nextTerm {
		ja.add("次は、" + v.nextJA + "、終点です。")
		en.add("The next station is " + v.numberedParen(true) + ", the last stop.")
	} else {
		ja.add("次は、" + v.nextJA + "、" + v.nextJA + "。")
		en.add("The next station is " + v.numberedParen(true) + ".")
	}
	ja.add(wrap("", v.transfersJA, "は、お乗り換えください。"))
	en.add(wrap("Please transfer at this station for the ", v.transfersEN, "."))
	return ja, en
}

// jrEast is shared by the Yamanote, JO and JL themes.
func jrEast(v vars, arriving bool) (*speech, *speech) {
	ja, en := newJA(), newEN()
	if arriving {
		if v.nextTerm {
			ja.add("まもなく、終点、" + v.nextJA + "。" + v.nextJA + "。")
			en.add("We will soon be arriving at " + v.numbered(false) + ", the last stop.")
		} else {
			ja.add("まもなく、" + v.nextJA + "。" + v.nextJA + "。")
			en.add("We will soon make a brief stop at " + v.numbered(false) + ".")
		}
		ja.add(wrap("", v.transfersJA, "は、お乗り換えです。"))
		en.add(wrap("Please change here for the ", v.transfersEN, "."))
		if v.afterJA != "" {
			if v.afterTerm {
				ja.add(v.nextJA + "の次は、終点、" + v.afterJA + "に止まります。")
				en.add("The stop after " + v.nextEN + " is " + v.afterEN + ", the last stop.")
			} else {
				ja.add(v.nextJA + "の次は、" + v.afterJA + "に止まります。")
				en.add("The stop after " + v.nextEN + " is " + v.afterEN + ".")
			}
		}
		return ja, en
	}

	if v.first {
		ja.add("今日も、JR東日本をご利用くださいまして、ありがとうございます。")
		ja.add(wrap("この電車は、", joinJA(v.lineJA, v.boundJA), "です。"))
		en.add(wrap("This is the ", spaced(v.lineEN, "train", v.boundEN), "."))
	}
	if v.nextTerm {
		ja.add("次は、終点、" + v.nextJA + "。" + v.nextJA + "。")
		en.add("The next station is " + v.numbered(false) + ", the last stop.")
	} else {
		ja.add("次は、" + v.nextJA + "。" + v.nextJA + "。")
		en.add("The next station is " + v.numbered(false) + ".")
	}
	ja.add(wrap("", v.transfersJA, "は、お乗り換えです。"))
	en.add(wrap("Please change here for the ", v.transfersEN, "."))
	return ja, en
}

func jrWest(v vars, arriving bool) (*speech, *speech) {
	ja, en := newJA(), newEN()
	if arriving {
		if v.nextTerm {
			ja.add("まもなく、終点、" + v.nextJA + "です。")
			ja.add("お忘れ物のないよう、ご注意ください。")
			en.add("We will soon be arriving at " + v.numbered(false) + ", the last stop.")
			en.add("Please make sure you have all your belongings with you.")
		} else {
			ja.add("まもなく、" + v.nextJA + "です。")
			en.add("We will soon be making a brief stop at " + v.numbered(false) + ".")
		}
		ja.add(wrap("", v.transfersJA, "は、お乗り換えです。"))
		en.add(wrap("Transfer here for the ", v.transfersEN, "."))
		return ja, en
	}

	if v.first {
		ja.add("今日も、JR西日本をご利用いただきまして、ありがとうございます。")
		ja.add(wrap("この電車は、", joinJA(v.typeJA, v.boundJA), "です。"))
		en.add("Thank you for using JR West.")
		en.add(wrap("This is the ", spaced(v.typeEN, "train", v.boundEN), "."))
	}
	if v.nextTerm {
		ja.add("次は、終点、" + v.nextJA + "です。")
		en.add("The next stop is " + v.numbered(false) + ", the last stop.")
	} else {
		ja.add("次は、" + v.nextJA + "です。")
		en.add("The next stop is " + v.numbered(false) + ".")
	}
	ja.add(wrap("途中の、", v.passedJA, "には止まりませんので、ご注意ください。"))
	en.add(wrap("This train will not stop at ", v.passedEN, "."))
	if v.afterJA != "" {
		ja.add(v.nextJA + "を出ますと、" + v.afterJA + "に止まります。")
		en.add("After leaving " + v.nextEN + ", we will be stopping at " + v.afterEN + ".")
	}
	ja.add(wrap("", v.transfersJA, "は、お乗り換えです。"))
	en.add(wrap("Transfer here for the ", v.transfersEN, "."))
	return ja, en
}

func saikyo(v vars, arriving bool) (*speech, *speech) {
	ja, en := newJA(), newEN()
	if arriving {
		ja.add("まもなく、" + v.nextJA + "です。")
		ja.when(v.nextTerm, "この電車は、"+v.nextJA+"止まりです。")
		en.add("We will soon be arriving at " + v.numbered(false) + ".")
		en.when(v.nextTerm, "This train terminates at "+v.nextEN+".")
		ja.add(wrap("", v.transfersJA, "は、お乗り換えです。"))
		en.add(wrap("Please change here for the ", v.transfersEN, "."))
		return ja, en
	}

	if v.first {
		ja.add(wrap("この電車は、", joinJA(v.lineJA, v.typeJA, v.boundJA), "です。"))
		ja.add(wrap("", v.connectedJA, "に直通運転いたします。"))
		en.add(wrap("This is the ", spaced(v.lineEN, v.typeEN, "train", v.boundEN), "."))
		en.add(wrap("This train will be through-running onto the ", v.connectedEN, "."))
	}
	if v.nextTerm {
		ja.add("次は、" + v.nextJA + "、終点です。")
		en.add("The next station is " + v.numbered(false) + ", the last stop.")
	} else {
		ja.add("次は、" + v.nextJA + "です。")
		en.add("The next station is " + v.numbered(false) + ".")
	}
	ja.add(wrap("", v.transfersJA, "は、お乗り換えです。"))
	en.add(wrap("Please change here for the ", v.transfersEN, "."))
	return ja, en
}

func toei(v vars, arriving bool) (*speech, *speech) {
	ja, en := newJA(), newEN()
	if arriving {
		if v.nextTerm {
			ja.add("まもなく、終点、" + v.nextJA + "です。")
			en.add("Arriving at " + v.numbered(true) + ", the last stop.")
		} else {
			ja.add("まもなく、" + v.nextJA + "です。")
			en.add("Arriving at " + v.numbered(true) + ".")
		}
		ja.add(wrap("", v.transfersJA, "は、お乗り換えです。"))
		en.add(wrap("Please change here for the ", v.transfersEN, "."))
		ja.when(v.nextTerm, "都営地下鉄をご利用いただきまして、ありがとうございました。")
		en.when(v.nextTerm, "Thank you for riding the Toei Subway.")
		return ja, en
	}

	if v.first {
		ja.add("今日も、都営地下鉄をご利用いただきまして、ありがとうございます。")
		ja.add(wrap("この電車は、", joinJA(v.lineJA, v.boundJA), "です。"))
		en.add(wrap("This is a ", spaced(v.lineEN, "train", v.boundEN), "."))
		en.add(wrap("This train will run through onto the ", v.connectedEN, "."))
	}
	if v.nextTerm {
		ja.add("次は、終点、" + v.nextJA + "です。")
		en.add("The next station is " + v.numbered(true) + ", the last stop.")
	} else {
		ja.add("次は、" + v.nextJA + "です。")
		en.add("The next station is " + v.numbered(true) + ".")
	}
	ja.add(wrap("", v.transfersJA, "は、お乗り換えです。"))
	en.add(wrap("Please change here for the ", v.transfersEN, "."))
	return ja, en
}

func jrKyushu(v vars, arriving bool) (*speech, *speech) {
	ja, en := newJA(), newEN()
	if arriving {
		if v.nextTerm {
			ja.add("まもなく、終点、" + v.nextJA + "に到着します。")
			en.add("We will soon arrive at " + v.numbered(false) + ", the last stop.")
		} else {
			ja.add("まもなく、" + v.nextJA + "に到着します。")
			en.add("We will soon arrive at " + v.numbered(false) + ".")
		}
		ja.add(wrap("", v.transfersJA, "は、お乗り換えください。"))
		en.add(wrap("Passengers changing to the ", v.transfersEN, ", please transfer at this station."))
		return ja, en
	}

	if v.first {
		ja.add("今日も、JR九州をご利用いただきまして、ありがとうございます。")
		ja.add(wrap("この列車は、", joinJA(v.typeJA, v.boundJA), "です。"))
		en.add("Thank you for using JR Kyushu.")
		en.add(wrap("This is the ", spaced(v.typeEN, "train", v.boundEN), "."))
	}
	if v.nextTerm {
		ja.add("次は、終点、" + v.nextJA + "です。")
		en.add("The next station is " + v.numbered(false) + ", the last stop.")
	} else {
		ja.add("次は、" + v.nextJA + "です。")
		en.add("The next station is " + v.numbered(false) + ".")
	}
	ja.add(wrap("", v.transfersJA, "は、お乗り換えください。"))
	en.add(wrap("Passengers changing to the ", v.transfersEN, ", please transfer at this station."))
	return ja, en
}
