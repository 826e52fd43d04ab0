package mysql

import (
	"context"
	"fmt"
)

// Schema bootstrap is recreate-and-reseed: drop everything, create
// everything. There is no incremental migration mechanism.

var dropStatements = []string{
	`DROP TABLE IF EXISTS Evaluation`,
	`DROP TABLE IF EXISTS Hotel_Prestation`,
	`DROP TABLE IF EXISTS Prestation`,
	`DROP TABLE IF EXISTS Reservation_Chambre`,
	`DROP TABLE IF EXISTS Reservation`,
	`DROP TABLE IF EXISTS Chambre`,
	`DROP TABLE IF EXISTS TypeChambre`,
	`DROP TABLE IF EXISTS Client`,
	`DROP TABLE IF EXISTS Hotel`,
}

var createStatements = []string{
	`CREATE TABLE Hotel (
  id_hotel    INT AUTO_INCREMENT PRIMARY KEY,
  ville       VARCHAR(100) NOT NULL,
  pays        VARCHAR(100) NOT NULL,
  code_postal VARCHAR(20)  NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE Client (
  id_client   INT AUTO_INCREMENT PRIMARY KEY,
  nom_complet VARCHAR(200) NOT NULL,
  adresse     VARCHAR(255) NOT NULL,
  ville       VARCHAR(100) NOT NULL,
  code_postal VARCHAR(20)  NOT NULL,
  email       VARCHAR(255) NOT NULL,
  telephone   VARCHAR(30)  NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE TypeChambre (
  id_type   INT AUTO_INCREMENT PRIMARY KEY,
  libelle   VARCHAR(100) NOT NULL,
  prix_nuit DECIMAL(8,2) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE Chambre (
  id_chambre INT AUTO_INCREMENT PRIMARY KEY,
  etage      INT NOT NULL,
  fumeur     TINYINT(1) NOT NULL DEFAULT 0,
  id_hotel   INT NOT NULL,
  id_type    INT NOT NULL,
  CONSTRAINT fk_chambre_hotel FOREIGN KEY (id_hotel) REFERENCES Hotel (id_hotel),
  CONSTRAINT fk_chambre_type  FOREIGN KEY (id_type)  REFERENCES TypeChambre (id_type)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE Reservation (
  id_reservation INT AUTO_INCREMENT PRIMARY KEY,
  date_arrivee   DATE NOT NULL,
  date_depart    DATE NOT NULL,
  id_client      INT NOT NULL,
  CONSTRAINT fk_reservation_client FOREIGN KEY (id_client) REFERENCES Client (id_client)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE Reservation_Chambre (
  id_reservation INT NOT NULL,
  id_chambre     INT NOT NULL,
  PRIMARY KEY (id_reservation, id_chambre),
  CONSTRAINT fk_rc_reservation FOREIGN KEY (id_reservation) REFERENCES Reservation (id_reservation),
  CONSTRAINT fk_rc_chambre     FOREIGN KEY (id_chambre)     REFERENCES Chambre (id_chambre)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE Prestation (
  id_prestation INT AUTO_INCREMENT PRIMARY KEY,
  libelle       VARCHAR(100) NOT NULL,
  tarif         DECIMAL(8,2) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE Hotel_Prestation (
  id_hotel      INT NOT NULL,
  id_prestation INT NOT NULL,
  PRIMARY KEY (id_hotel, id_prestation),
  CONSTRAINT fk_hp_hotel      FOREIGN KEY (id_hotel)      REFERENCES Hotel (id_hotel),
  CONSTRAINT fk_hp_prestation FOREIGN KEY (id_prestation) REFERENCES Prestation (id_prestation)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE Evaluation (
  id_evaluation  INT AUTO_INCREMENT PRIMARY KEY,
  note           INT NOT NULL,
  commentaire    TEXT,
  id_reservation INT NOT NULL,
  CONSTRAINT fk_evaluation_reservation FOREIGN KEY (id_reservation) REFERENCES Reservation (id_reservation)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate drops and recreates the whole schema. Destructive.
func (r *Repo) Migrate(ctx context.Context) error {
	for _, stmts := range [][]string{dropStatements, createStatements} {
		for _, q := range stmts {
			if _, err := r.db.ExecContext(ctx, q); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
	}
	return nil
}
