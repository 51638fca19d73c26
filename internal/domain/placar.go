package domain

// Pontuacao devolve o que a ação soma ao placar. Pontos de tachi-waza vão para o autor;
// pontos de ne-waza vão para o atleta indicado no solo ou, sem indicação, para o autor.
func (a Acao) Pontuacao() []PlacarAtleta {
	var pontos []PlacarAtleta

	golpe := PlacarAtleta{ConfrontoID: a.ConfrontoID, AtletaID: a.AtletaID}
	golpe.somarGolpe(a.EfetividadeGolpe)
	if !golpe.Zerado() {
		pontos = append(pontos, golpe)
	}

	if a.Newaza {
		autor := a.AtletaID
		if a.AtletaNewazaID != nil {
			autor = *a.AtletaNewazaID
		}
		solo := PlacarAtleta{ConfrontoID: a.ConfrontoID, AtletaID: autor}
		solo.somarNewaza(a.EfetividadeNewaza)
		if !solo.Zerado() {
			pontos = append(pontos, solo)
		}
	}

	return pontos
}

func (s Shido) Pontuacao() PlacarAtleta {
	return PlacarAtleta{ConfrontoID: s.ConfrontoID, AtletaID: s.AtletaID, Shidos: 1}
}

// CalcularPlacar monta o placar dos dois atletas a partir das ações e shidos gravados.
// Eventos de quem não participa do confronto são ignorados.
func CalcularPlacar(c Confronto, acoes []Acao, shidos []Shido) []PlacarAtleta {
	placar := []PlacarAtleta{
		{ConfrontoID: c.ID, AtletaID: c.Atleta1ID},
		{ConfrontoID: c.ID, AtletaID: c.Atleta2ID},
	}
	somar := func(p PlacarAtleta) {
		for i := range placar {
			if placar[i].AtletaID == p.AtletaID {
				placar[i].Yuko += p.Yuko
				placar[i].WazaAri += p.WazaAri
				placar[i].Ippon += p.Ippon
				placar[i].Shidos += p.Shidos
				return
			}
		}
	}

	for _, a := range acoes {
		for _, p := range a.Pontuacao() {
			somar(p)
		}
	}
	for _, s := range shidos {
		somar(s.Pontuacao())
	}

	return placar
}

func (p PlacarAtleta) Zerado() bool {
	return p.Yuko == 0 && p.WazaAri == 0 && p.Ippon == 0 && p.Shidos == 0
}

func (p *PlacarAtleta) somarGolpe(e EfetividadeGolpe) {
	switch e {
	case EfetividadeYuko:
		p.Yuko++
	case EfetividadeWazaAri:
		p.WazaAri++
	case EfetividadeIppon:
		p.Ippon++
	}
}

func (p *PlacarAtleta) somarNewaza(e EfetividadeNewaza) {
	switch e {
	case NewazaYuko:
		p.Yuko++
	case NewazaWazaAri:
		p.WazaAri++
	case NewazaIppon:
		p.Ippon++
	}
}
