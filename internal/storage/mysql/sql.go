package mysql

// Overlap rule used by availability and the optional booking guard:
// [start,end] overlaps [date_arrivee,date_depart] iff
//   start <= date_depart AND end >= date_arrivee
// Boundaries are inclusive. A departure on the requested start date still
// blocks the room (conservative same-day turnover).

// Anti-join: a room qualifies only when no assignment at all overlaps the
// range. A per-assignment LEFT JOIN would let a room's non-overlapping
// assignment produce a NULL row even while another assignment on the same
// room overlaps.
const availableRoomsSQL = `
SELECT ch.id_chambre, ch.etage, ch.fumeur, ch.id_hotel, ch.id_type
FROM Chambre ch
WHERE NOT EXISTS (
  SELECT 1
  FROM Reservation_Chambre rc
  JOIN Reservation r ON rc.id_reservation = r.id_reservation
  WHERE rc.id_chambre = ch.id_chambre
    AND ? <= r.date_depart AND ? >= r.date_arrivee
)
`

const insertClientSQL = `
INSERT INTO Client (nom_complet, adresse, ville, code_postal, email, telephone)
VALUES (?, ?, ?, ?, ?, ?)
`

const getClientSQL = `
SELECT id_client, nom_complet, adresse, ville, code_postal, email, telephone
FROM Client
WHERE id_client = ?
`

const clientsByCitySQL = `
SELECT id_client, nom_complet, adresse, ville, code_postal, email, telephone
FROM Client
WHERE ville = ?
ORDER BY id_client
`

const insertReservationSQL = `
INSERT INTO Reservation (date_arrivee, date_depart, id_client)
VALUES (?, ?, ?)
`

const insertAssignmentsPrefix = `INSERT INTO Reservation_Chambre (id_reservation, id_chambre) VALUES `

// Locks the requested room rows so two guarded writers racing for the same
// room serialize even when neither sees a conflict yet.
const guardLockRoomsPrefix = `
SELECT id_chambre
FROM Chambre
WHERE id_chambre IN `

const guardLockRoomsSuffix = ` FOR UPDATE`

const guardOverlapPrefix = `
SELECT COUNT(*)
FROM Reservation_Chambre rc
JOIN Reservation r ON rc.id_reservation = r.id_reservation
WHERE ? <= r.date_depart AND ? >= r.date_arrivee AND rc.id_chambre IN `

const guardOverlapSuffix = ` FOR UPDATE`

const roomsByIDPrefix = `
SELECT id_chambre, etage, fumeur, id_hotel, id_type
FROM Chambre
WHERE id_chambre IN `

const reservationsPerClientSQL = `
SELECT c.id_client, c.nom_complet, COUNT(r.id_reservation) AS nb_res
FROM Client c
LEFT JOIN Reservation r ON c.id_client = r.id_client
GROUP BY c.id_client, c.nom_complet
ORDER BY c.id_client
`

const roomsPerTypeSQL = `
SELECT t.id_type, t.libelle, COUNT(ch.id_chambre) AS nb_chambres
FROM TypeChambre t
LEFT JOIN Chambre ch ON t.id_type = ch.id_type
GROUP BY t.id_type, t.libelle
ORDER BY t.id_type
`

// One row per reservation/hotel-room combination; the fan-out across
// hotels is intended display behavior, not deduplicated.
const reservationSummariesSQL = `
SELECT r.id_reservation, c.nom_complet, h.ville, r.date_arrivee, r.date_depart
FROM Reservation r
JOIN Client c ON r.id_client = c.id_client
JOIN Reservation_Chambre rc ON r.id_reservation = rc.id_reservation
JOIN Chambre ch ON rc.id_chambre = ch.id_chambre
JOIN Hotel h ON ch.id_hotel = h.id_hotel
ORDER BY r.id_reservation
`

const evaluationsSQL = `
SELECT id_evaluation, id_reservation, note, commentaire
FROM Evaluation
WHERE id_reservation = ?
ORDER BY id_evaluation
`

// ----------------------------------------------------------------------------
// SEED / CATALOG WRITES (used by cmd/seeder and tests; catalog rows are
// immutable at runtime)
// ----------------------------------------------------------------------------

const insertHotelSQL = `
INSERT INTO Hotel (ville, pays, code_postal)
VALUES (?, ?, ?)
`

const insertRoomTypeSQL = `
INSERT INTO TypeChambre (libelle, prix_nuit)
VALUES (?, ?)
`

const insertRoomSQL = `
INSERT INTO Chambre (etage, fumeur, id_hotel, id_type)
VALUES (?, ?, ?, ?)
`

const insertAmenitySQL = `
INSERT INTO Prestation (libelle, tarif)
VALUES (?, ?)
`

const linkHotelAmenitySQL = `
INSERT INTO Hotel_Prestation (id_hotel, id_prestation)
VALUES (?, ?)
`

const insertEvaluationSQL = `
INSERT INTO Evaluation (note, commentaire, id_reservation)
VALUES (?, ?, ?)
`
