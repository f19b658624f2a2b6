package sqlinline

const QEnsureSongJobs = `--sql e9a9c775-3d94-4474-bdaa-e16cb83d91e1
create table if not exists song_jobs (
  task_id    text primary key,
  status     text not null,
  record     jsonb not null,
  updated_at timestamptz not null default now()
)`

// Last write wins: the whole record is replaced on conflict.
const QUpsertSongJob = `--sql dc2e75db-7f28-4064-a9b7-58c968af5c11
insert into song_jobs (task_id, status, record, updated_at)
values ($1::text, $2::text, $3::jsonb, $4::timestamptz)
on conflict (task_id) do update
set status     = excluded.status,
    record     = excluded.record,
    updated_at = excluded.updated_at`

const QSelectSongJob = `--sql 9d3ef2f4-a3a9-4b60-a680-7b245dc22531
select record
from song_jobs
where task_id = $1::text`
