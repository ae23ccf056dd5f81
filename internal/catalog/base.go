// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import "github.com/pdiddy/libris/pkg/types"

// rec builds a base-collection record. Years and Period are filled in by
// New from the date string.
func rec(id, title, author, date, notes string, themes ...string) types.Record {
	return types.Record{
		ID:      id,
		Title:   title,
		Authors: []string{author},
		Date:    date,
		Themes:  themes,
		Notes:   notes,
		Source:  types.SourceBaseCollection,
	}
}

// BaseCollection returns the curated works LIBRIS ships with, ordered
// chronologically. The slice is freshly allocated on every call.
func BaseCollection() []types.Record {
	records := []types.Record{
		// Ancient
		rec("confucius-analects", "Analects", "Confucius", "c. 475 BCE",
			"Sayings compiled by disciples; the ren and li of the junzi.",
			"ethics", "virtue", "politics", "education"),
		rec("laozi-tao-te-ching", "Tao Te Ching", "Laozi", "c. 400 BCE",
			"Eighty-one short chapters on the Dao and wu wei.",
			"metaphysics", "nature", "ethics", "politics"),
		rec("sunzi-art-of-war", "The Art of War", "Sunzi", "5th century BCE",
			"Treatise on strategy, deception and the conduct of the state at war.",
			"war", "strategy", "politics"),
		rec("herodotus-histories", "Histories", "Herodotus", "c. 430 BCE",
			"Inquiry into the Greco-Persian wars; the founding text of Western historiography.",
			"history", "war", "culture"),
		rec("thucydides-peloponnesian-war", "History of the Peloponnesian War", "Thucydides", "c. 400 BCE",
			"Includes the Melian dialogue and Pericles' funeral oration.",
			"history", "war", "politics", "power"),
		rec("plato-apology", "Apology", "Plato", "c. 399 BCE",
			"Socrates' defense speech at his trial.",
			"ethics", "justice", "death"),
		rec("plato-symposium", "Symposium", "Plato", "c. 385 BCE",
			"Speeches in praise of Eros culminating in Diotima's ladder of love.",
			"love", "beauty", "metaphysics"),
		rec("plato-republic", "Republic", "Plato", "c. 375 BCE",
			"Justice in the city and the soul; the allegory of the cave; the philosopher-king.",
			"justice", "politics", "ethics", "education", "metaphysics"),
		rec("plato-phaedo", "Phaedo", "Plato", "c. 360 BCE",
			"The last hours of Socrates and arguments for the immortality of the soul.",
			"death", "soul", "metaphysics"),
		rec("aristotle-metaphysics", "Metaphysics", "Aristotle", "c. 350 BCE",
			"First philosophy: substance, the four causes and the unmoved mover.",
			"metaphysics", "causation", "being"),
		rec("aristotle-politics", "Politics", "Aristotle", "c. 350 BCE",
			"The polis as natural; classification of constitutions; citizenship.",
			"politics", "citizenship", "justice"),
		rec("aristotle-nicomachean-ethics", "Nicomachean Ethics", "Aristotle", "c. 340 BCE",
			"Eudaimonia, the doctrine of the mean and the virtues of character.",
			"ethics", "virtue", "happiness", "friendship"),
		rec("aristotle-poetics", "Poetics", "Aristotle", "c. 335 BCE",
			"Tragedy, mimesis and catharsis.",
			"aesthetics", "art", "tragedy"),
		rec("mencius-mengzi", "Mengzi", "Mencius", "c. 300 BCE",
			"Human nature is good; the four sprouts; benevolent government.",
			"ethics", "human nature", "politics"),
		rec("zhuangzi-zhuangzi", "Zhuangzi", "Zhuangzi", "c. 300 BCE",
			"Parables of spontaneity, perspective and the butterfly dream.",
			"nature", "freedom", "skepticism"),
		rec("epicurus-letter-to-menoeceus", "Letter to Menoeceus", "Epicurus", "c. 300 BCE",
			"Pleasure as the absence of pain; death is nothing to us.",
			"ethics", "happiness", "death"),
		rec("lucretius-on-the-nature-of-things", "On the Nature of Things", "Lucretius", "c. 55 BCE",
			"Epicurean atomism in verse.",
			"nature", "metaphysics", "death"),
		rec("cicero-on-duties", "On Duties", "Cicero", "44 BCE",
			"Letter to his son on the honorable and the useful.",
			"ethics", "duty", "politics"),
		rec("seneca-letters-to-lucilius", "Letters to Lucilius", "Seneca", "c. 65",
			"Stoic moral letters on time, friendship and adversity.",
			"ethics", "stoicism", "friendship"),
		rec("epictetus-enchiridion", "Enchiridion", "Epictetus", "c. 125",
			"Handbook on what is and is not up to us.",
			"ethics", "stoicism", "freedom"),
		rec("marcus-aurelius-meditations", "Meditations", "Marcus Aurelius", "c. 170-180",
			"Private notebooks of a Stoic emperor.",
			"ethics", "stoicism", "self"),
		rec("plotinus-enneads", "Enneads", "Plotinus", "c. 270",
			"The One, Intellect and Soul; compiled by Porphyry.",
			"metaphysics", "soul", "religion"),

		// Medieval
		rec("augustine-confessions", "Confessions", "Augustine of Hippo", "397-400",
			"Autobiography of conversion; Book XI on time.",
			"religion", "self", "time", "memory"),
		rec("augustine-city-of-god", "The City of God", "Augustine of Hippo", "413-426",
			"The earthly and heavenly cities after the sack of Rome.",
			"religion", "politics", "history"),
		rec("boethius-consolation-of-philosophy", "The Consolation of Philosophy", "Boethius", "c. 524",
			"Written in prison; Lady Philosophy on fortune and providence.",
			"happiness", "fortune", "religion"),
		rec("al-farabi-virtuous-city", "The Virtuous City", "Al-Farabi", "c. 942",
			"The perfect state modeled on the cosmos, ruled by a philosopher-prophet.",
			"politics", "happiness", "religion"),
		rec("avicenna-book-of-healing", "The Book of Healing", "Avicenna", "c. 1027",
			"Encyclopedia of logic, natural science and metaphysics; the floating man.",
			"metaphysics", "logic", "science", "soul"),
		rec("anselm-proslogion", "Proslogion", "Anselm of Canterbury", "1078",
			"The ontological argument for the existence of God.",
			"religion", "metaphysics"),
		rec("al-ghazali-incoherence-of-the-philosophers", "The Incoherence of the Philosophers", "Al-Ghazali", "1095",
			"Critique of the Aristotelian philosophers; occasionalism about causes.",
			"religion", "metaphysics", "causation"),
		rec("averroes-incoherence-of-the-incoherence", "The Incoherence of the Incoherence", "Averroes", "c. 1180",
			"Point-by-point reply to al-Ghazali defending demonstrative philosophy.",
			"reason", "religion", "metaphysics"),
		rec("maimonides-guide-for-the-perplexed", "The Guide for the Perplexed", "Maimonides", "c. 1190",
			"Reconciling scripture with Aristotelian philosophy.",
			"religion", "reason", "metaphysics"),
		rec("aquinas-summa-theologica", "Summa Theologica", "Thomas Aquinas", "1265-1274",
			"Five ways, natural law and the synthesis of faith and reason.",
			"religion", "natural law", "ethics", "metaphysics"),
		rec("ockham-summa-logicae", "Summa Logicae", "William of Ockham", "c. 1323",
			"Terminist logic and nominalism.",
			"logic", "language"),
		rec("ibn-khaldun-muqaddimah", "Muqaddimah", "Ibn Khaldun", "1377",
			"Prolegomenon to universal history; asabiyyah and the cycle of dynasties.",
			"history", "society", "economics"),
		rec("christine-de-pizan-city-of-ladies", "The Book of the City of Ladies", "Christine de Pizan", "1405",
			"Allegorical defense of women built from exemplary lives.",
			"gender", "history", "virtue"),

		// Renaissance
		rec("erasmus-praise-of-folly", "The Praise of Folly", "Desiderius Erasmus", "1511",
			"Satire of scholastic theology and clerical abuses.",
			"religion", "satire", "education"),
		rec("machiavelli-the-prince", "The Prince", "Niccolo Machiavelli", "1513",
			"Virtu and fortuna; how a new prince acquires and keeps power.",
			"politics", "power", "virtue"),
		rec("more-utopia", "Utopia", "Thomas More", "1516",
			"An island commonwealth without private property.",
			"politics", "society", "property"),
		rec("machiavelli-discourses-on-livy", "Discourses on Livy", "Niccolo Machiavelli", "c. 1517",
			"Republican liberty and mixed government drawn from Roman history.",
			"politics", "history", "freedom"),
		rec("montaigne-essays", "Essays", "Michel de Montaigne", "1580",
			"Que sais-je? Self-portraiture and skeptical inquiry.",
			"self", "skepticism", "education"),

		// Early Modern
		rec("bacon-novum-organum", "Novum Organum", "Francis Bacon", "1620",
			"Induction and the idols of the mind.",
			"science", "method", "epistemology"),
		rec("grotius-law-of-war-and-peace", "On the Law of War and Peace", "Hugo Grotius", "1625",
			"Natural law foundations of international law.",
			"law", "war", "natural law"),
		rec("descartes-discourse-on-method", "Discourse on the Method", "Rene Descartes", "1637",
			"Rules of method and the cogito.",
			"method", "epistemology", "science"),
		rec("descartes-meditations", "Meditations on First Philosophy", "Rene Descartes", "1641",
			"Radical doubt, the cogito and mind-body dualism.",
			"epistemology", "metaphysics", "mind", "skepticism"),
		rec("hobbes-leviathan", "Leviathan", "Thomas Hobbes", "1651",
			"The state of nature as war of all against all; the sovereign by covenant.",
			"political philosophy", "social contract", "sovereignty", "state of nature"),
		rec("spinoza-theological-political-treatise", "Theological-Political Treatise", "Baruch Spinoza", "1670",
			"Biblical criticism and the defense of freedom of thought.",
			"religion", "politics", "freedom"),
		rec("pascal-pensees", "Pensees", "Blaise Pascal", "1670",
			"Fragments on the human condition; the wager.",
			"religion", "faith", "human nature"),
		rec("spinoza-ethics", "Ethics", "Baruch Spinoza", "1677",
			"Demonstrated in geometrical order: God or Nature, the affects, freedom.",
			"metaphysics", "ethics", "religion", "freedom"),
		rec("locke-second-treatise", "Second Treatise of Government", "John Locke", "1689",
			"Natural rights, property and government by consent.",
			"political philosophy", "social contract", "property", "consent"),
		rec("locke-essay-concerning-human-understanding", "An Essay Concerning Human Understanding", "John Locke", "1689",
			"The mind as blank slate; ideas from experience.",
			"epistemology", "empiricism", "mind"),

		// Enlightenment
		rec("berkeley-principles-of-human-knowledge", "A Treatise Concerning the Principles of Human Knowledge", "George Berkeley", "1710",
			"Esse est percipi.",
			"epistemology", "idealism", "metaphysics"),
		rec("leibniz-monadology", "Monadology", "Gottfried Wilhelm Leibniz", "1714",
			"Simple substances and pre-established harmony.",
			"metaphysics", "mind"),
		rec("hume-treatise-of-human-nature", "A Treatise of Human Nature", "David Hume", "1739-1740",
			"Impressions and ideas, causation as custom, reason as slave of the passions.",
			"epistemology", "empiricism", "causation", "ethics"),
		rec("montesquieu-spirit-of-the-laws", "The Spirit of the Laws", "Montesquieu", "1748",
			"Climate, commerce and the separation of powers.",
			"politics", "law", "separation of powers"),
		rec("hume-enquiry-concerning-human-understanding", "An Enquiry Concerning Human Understanding", "David Hume", "1748",
			"The problem of induction and the essay on miracles.",
			"epistemology", "skepticism", "causation"),
		rec("rousseau-discourse-on-inequality", "Discourse on the Origin of Inequality", "Jean-Jacques Rousseau", "1755",
			"Natural man, amour-propre and the invention of property.",
			"inequality", "human nature", "society", "state of nature"),
		rec("smith-theory-of-moral-sentiments", "The Theory of Moral Sentiments", "Adam Smith", "1759",
			"Sympathy and the impartial spectator.",
			"ethics", "sympathy", "human nature"),
		rec("voltaire-candide", "Candide", "Voltaire", "1759",
			"Satire of Leibnizian optimism.",
			"satire", "religion", "optimism"),
		rec("rousseau-social-contract", "The Social Contract", "Jean-Jacques Rousseau", "1762",
			"Man is born free; the general will and popular sovereignty.",
			"political philosophy", "social contract", "general will", "freedom"),
		rec("smith-wealth-of-nations", "The Wealth of Nations", "Adam Smith", "1776",
			"Division of labor, markets and the invisible hand.",
			"economics", "markets", "labor"),
		rec("kant-critique-of-pure-reason", "Critique of Pure Reason", "Immanuel Kant", "1781-1787",
			"Synthetic a priori judgments and transcendental idealism.",
			"epistemology", "metaphysics", "reason"),
		rec("kant-groundwork", "Groundwork of the Metaphysics of Morals", "Immanuel Kant", "1785",
			"The categorical imperative and autonomy of the will.",
			"ethics", "duty", "autonomy"),
		rec("burke-reflections-on-the-revolution-in-france", "Reflections on the Revolution in France", "Edmund Burke", "1790",
			"Tradition, prescription and the critique of abstract rights.",
			"politics", "revolution", "tradition"),
		rec("wollstonecraft-vindication", "A Vindication of the Rights of Woman", "Mary Wollstonecraft", "1792",
			"Education and reason as the ground of women's equality.",
			"gender", "education", "rights"),
		rec("kant-perpetual-peace", "Perpetual Peace", "Immanuel Kant", "1795",
			"Republican constitutions, federation and cosmopolitan right.",
			"politics", "peace", "cosmopolitanism"),

		// Modern
		rec("hegel-phenomenology-of-spirit", "Phenomenology of Spirit", "G. W. F. Hegel", "1807",
			"Consciousness to absolute knowing; the master-slave dialectic.",
			"metaphysics", "history", "consciousness"),
		rec("kierkegaard-fear-and-trembling", "Fear and Trembling", "Soren Kierkegaard", "1843",
			"Abraham, the knight of faith and the teleological suspension of the ethical.",
			"faith", "ethics", "existentialism"),
		rec("marx-engels-communist-manifesto", "The Communist Manifesto", "Karl Marx", "1848",
			"History as class struggle.",
			"economics", "class", "politics", "history"),
		rec("mill-on-liberty", "On Liberty", "John Stuart Mill", "1859",
			"The harm principle and freedom of thought and discussion.",
			"liberty", "politics", "ethics"),
		rec("nietzsche-genealogy-of-morals", "On the Genealogy of Morals", "Friedrich Nietzsche", "1887",
			"Master and slave morality, ressentiment, the ascetic ideal.",
			"ethics", "morality", "history"),
		rec("wittgenstein-tractatus", "Tractatus Logico-Philosophicus", "Ludwig Wittgenstein", "1921",
			"The picture theory of meaning; whereof one cannot speak.",
			"language", "logic", "metaphysics"),
		rec("sartre-being-and-nothingness", "Being and Nothingness", "Jean-Paul Sartre", "1943",
			"Existence precedes essence; bad faith.",
			"existentialism", "freedom", "consciousness"),

		// Contemporary
		rec("arendt-human-condition", "The Human Condition", "Hannah Arendt", "1958",
			"Labor, work and action; the public realm.",
			"politics", "labor", "freedom"),
		rec("rawls-theory-of-justice", "A Theory of Justice", "John Rawls", "1971",
			"Justice as fairness; the original position and the veil of ignorance.",
			"justice", "political philosophy", "social contract", "fairness"),
	}

	for i := range records {
		switch records[i].ID {
		case "marx-engels-communist-manifesto":
			records[i].Authors = []string{"Karl Marx", "Friedrich Engels"}
		case "augustine-confessions", "augustine-city-of-god":
			// Conventionally read as the opening of the medieval tradition
			// even though the dates fall before the cutoff.
			records[i].Period = types.PeriodMedieval
		}
	}
	return records
}
